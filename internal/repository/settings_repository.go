package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creapolis/helpdesk-service/internal/domain"
)

// SettingsRepository reads and writes the singleton portal settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.PortalSettings, error)
	Upsert(ctx context.Context, settings *domain.PortalSettings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository builds repository.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.PortalSettings, error) {
	const query = `
        SELECT id, portal_name, support_email, notifications_enabled, market, updated_at
        FROM portal_settings ORDER BY updated_at DESC LIMIT 1`
	var settings domain.PortalSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.PortalName,
		&settings.SupportEmail,
		&settings.NotificationsEnabled,
		&settings.Market,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The portal works before any settings row is saved.
			return &domain.PortalSettings{PortalName: "IT Support Portal", NotificationsEnabled: true}, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *domain.PortalSettings) error {
	if settings.ID == "" {
		const insert = `
            INSERT INTO portal_settings (portal_name, support_email, notifications_enabled, market)
            VALUES ($1,$2,$3,$4)
            RETURNING id, updated_at`
		return r.pool.QueryRow(ctx, insert,
			settings.PortalName,
			settings.SupportEmail,
			settings.NotificationsEnabled,
			settings.Market,
		).Scan(&settings.ID, &settings.UpdatedAt)
	}
	const update = `
        UPDATE portal_settings
        SET portal_name=$1, support_email=$2, notifications_enabled=$3, market=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, update,
		settings.PortalName,
		settings.SupportEmail,
		settings.NotificationsEnabled,
		settings.Market,
		settings.ID,
	).Scan(&settings.UpdatedAt)
}
