package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// CreateShipmentInput carries the fields accepted at shipment creation.
type CreateShipmentInput struct {
	CustomerID            uuid.UUID
	Type                  domain.ShipmentType
	Mode                  domain.ShipmentMode
	StartLocation         string
	EndLocation           string
	Cost                  decimal.Decimal
	CalculatedTotal       decimal.Decimal
	EstimatedDeliveryDate *time.Time
}

// UpdateShipmentInput uses pointers so omitted fields stay untouched.
type UpdateShipmentInput struct {
	CustomerID            *uuid.UUID
	Type                  *domain.ShipmentType
	Mode                  *domain.ShipmentMode
	StartLocation         *string
	EndLocation           *string
	Cost                  *decimal.Decimal
	CalculatedTotal       *decimal.Decimal
	EstimatedDeliveryDate *time.Time
}

// ShipmentPage is one page of shipments plus pagination metadata.
type ShipmentPage struct {
	Items      []*domain.Shipment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShipmentService implements shipment operations scoped to the calling user.
type ShipmentService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateShipmentInput) (*domain.Shipment, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Shipment, error)
	List(ctx context.Context, userID uuid.UUID, filter ListShipmentsFilter) (*ShipmentPage, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateShipmentInput) (*domain.Shipment, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// BulkDelete is all-or-nothing: if any id is absent or owned by another
	// user, nothing is deleted. Returns the number of deleted rows.
	BulkDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
	// MarkDelivered flips the delivery flag. Re-delivering an already
	// delivered shipment keeps the original delivery date.
	MarkDelivered(ctx context.Context, userID, id uuid.UUID, deliveryDate *time.Time) (*domain.Shipment, error)
	Stats(ctx context.Context, userID uuid.UUID) (*ShipmentStats, error)
}
