package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocationStatus is the lifecycle state of a delivery location.
type LocationStatus string

const (
	LocationActive      LocationStatus = "active"
	LocationInactive    LocationStatus = "inactive"
	LocationMaintenance LocationStatus = "maintenance"
)

// Valid reports whether the status is one of the known values.
func (s LocationStatus) Valid() bool {
	switch s {
	case LocationActive, LocationInactive, LocationMaintenance:
		return true
	}
	return false
}

// DeliveryLocation is a city a customer can have an order shipped to, with
// the pickup point metadata and the shipping cost applied at checkout.
type DeliveryLocation struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	City           string          `json:"city" db:"city"`
	ShippingCost   decimal.Decimal `json:"shippingCost" db:"shipping_cost"`
	PickupLocation string          `json:"pickupLocation" db:"pickup_location"`
	PickupPhone    string          `json:"pickupPhone" db:"pickup_phone"`
	Status         LocationStatus  `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// LocationRequest is the admin payload for creating or updating a location.
type LocationRequest struct {
	City           string          `json:"city"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	PickupLocation string          `json:"pickupLocation"`
	PickupPhone    string          `json:"pickupPhone"`
	Status         LocationStatus  `json:"status"`
}
