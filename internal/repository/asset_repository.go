package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creapolis/helpdesk-service/internal/domain"
)

// AssetRepository reads IT inventory referenced by tickets.
type AssetRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	ListActive(ctx context.Context, market *string) ([]domain.Asset, error)
	CountActive(ctx context.Context) (int64, error)
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository builds repository.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

const assetColumns = `id, name, type, serial_number, status, assigned_to, market, purchase_date, warranty_end`

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id=$1`, id)
	return scanAsset(row)
}

func (r *assetRepository) ListActive(ctx context.Context, market *string) ([]domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE status='active'`
	args := []any{}
	if market != nil {
		args = append(args, *market)
		query += ` AND market=$1`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *asset)
	}
	return result, rows.Err()
}

func (r *assetRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM assets WHERE status='active'`).Scan(&count)
	return count, err
}

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var asset domain.Asset
	if err := row.Scan(
		&asset.ID,
		&asset.Name,
		&asset.Type,
		&asset.SerialNumber,
		&asset.Status,
		&asset.AssignedTo,
		&asset.Market,
		&asset.PurchaseDate,
		&asset.WarrantyEnd,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}
