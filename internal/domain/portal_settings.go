package domain

import "time"

// PortalSettings is the singleton configuration row for the portal.
type PortalSettings struct {
	ID                   string
	PortalName           string
	SupportEmail         string
	NotificationsEnabled bool
	Market               string
	UpdatedAt            time.Time
}
