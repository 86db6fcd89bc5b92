package worker

import (
	"go.uber.org/zap"

	"github.com/creapolis/helpdesk-service/internal/config"
	"github.com/creapolis/helpdesk-service/internal/events"
	"github.com/creapolis/helpdesk-service/internal/service"
)

// StartNotificationWorker attaches notification handlers to the dispatcher.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *service.NotificationService {
	notifications := service.NewNotificationService(dispatcher, logger, cfg)
	notifications.RegisterHandlers()
	logger.Info("notification worker registered")
	return notifications
}
