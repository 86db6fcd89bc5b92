package domain

import "time"

// AssetStatus enumerates inventory states.
type AssetStatus string

const (
	AssetStatusActive      AssetStatus = "active"
	AssetStatusInactive    AssetStatus = "inactive"
	AssetStatusMaintenance AssetStatus = "maintenance"
)

// Asset is a piece of tracked IT inventory a ticket may reference.
type Asset struct {
	ID           string
	Name         string
	Type         string
	SerialNumber string
	Status       AssetStatus
	AssignedTo   *string
	Market       string
	PurchaseDate *time.Time
	WarrantyEnd  *time.Time
}
