package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// ListShipmentsFilter carries all query parameters for listing shipments.
// UserID is always enforced; every other field is optional.
type ListShipmentsFilter struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	Type       string // LOCAL, NATIONAL or INTERNATIONAL
	Mode       string // LAND, AIR or WATER
	Delivered  *bool
	Search     string // partial match on start or end location
	Page       int    // 1-based
	Limit      int    // rows per page (clamped at 100 by the service)
}

// ShipmentStats aggregates per-user shipment figures.
type ShipmentStats struct {
	Total       int64                         `json:"total"`
	Delivered   int64                         `json:"delivered"`
	Pending     int64                         `json:"pending"`
	TotalCost   decimal.Decimal               `json:"total_cost"`
	TotalAmount decimal.Decimal               `json:"total_amount"` // tax-inclusive
	ByType      map[domain.ShipmentType]int64 `json:"by_type"`
	ByMode      map[domain.ShipmentMode]int64 `json:"by_mode"`
}

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.Shipment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error)
	// List returns a page of shipments matching filter and the total count.
	List(ctx context.Context, filter ListShipmentsFilter) ([]*domain.Shipment, int64, error)
	Update(ctx context.Context, s *domain.Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteMany removes all given ids in a single statement.
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
	// CountByCustomer reports how many shipments still reference a customer.
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	// CountByUser reports how many shipments a user owns in total.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Stats(ctx context.Context, userID uuid.UUID) (*ShipmentStats, error)
}
