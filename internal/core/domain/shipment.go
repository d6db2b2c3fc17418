package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentType classifies a shipment by destination scope.
type ShipmentType string

const (
	TypeLocal         ShipmentType = "LOCAL"
	TypeNational      ShipmentType = "NATIONAL"
	TypeInternational ShipmentType = "INTERNATIONAL"
)

// ShipmentMode classifies a shipment by carrier medium.
type ShipmentMode string

const (
	ModeLand  ShipmentMode = "LAND"
	ModeAir   ShipmentMode = "AIR"
	ModeWater ShipmentMode = "WATER"
)

// Valid reports whether t is one of the known shipment types.
func (t ShipmentType) Valid() bool {
	switch t {
	case TypeLocal, TypeNational, TypeInternational:
		return true
	}
	return false
}

// Valid reports whether m is one of the known shipment modes.
func (m ShipmentMode) Valid() bool {
	switch m {
	case ModeLand, ModeAir, ModeWater:
		return true
	}
	return false
}

// Shipment is the core aggregate: one consignment moving from StartLocation
// to EndLocation for a customer of the owning user.
//
// Cost and CalculatedTotal are fixed-point decimals with two fractional
// digits; CalculatedTotal is the tax-inclusive amount and must never be below
// Cost. Monetary values round-trip through the database without drift.
type Shipment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_shipments_user_delivered,priority:1;index:idx_shipments_user_type,priority:1;index:idx_shipments_user_created,priority:1"`
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;not null;index"`

	Type ShipmentType `json:"type" gorm:"type:shipment_type;not null;index:idx_shipments_user_type,priority:2"`
	Mode ShipmentMode `json:"mode" gorm:"type:shipment_mode;not null"`

	StartLocation string `json:"start_location" gorm:"not null"`
	EndLocation   string `json:"end_location" gorm:"not null"`

	Cost            decimal.Decimal `json:"cost" gorm:"type:decimal(12,2);not null"`
	CalculatedTotal decimal.Decimal `json:"calculated_total" gorm:"type:decimal(12,2);not null"`

	IsDelivered           bool       `json:"is_delivered" gorm:"not null;default:false;index:idx_shipments_user_delivered,priority:2"`
	DeliveryDate          *time.Time `json:"delivery_date,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_shipments_user_created,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`

	User     *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Customer *Customer `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
}

// OwnerID reports the owning user of the record.
func (s *Shipment) OwnerID() uuid.UUID { return s.UserID }
