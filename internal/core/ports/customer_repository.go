package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// ListCustomersFilter carries all query parameters for listing customers.
// UserID is always set by the service layer; repositories never return rows
// belonging to another user.
type ListCustomersFilter struct {
	UserID uuid.UUID
	Search string // optional: partial match on name, phone or email
	Page   int    // 1-based
	Limit  int    // rows per page (clamped at 100 by the service)
}

// CustomerStats aggregates per-user customer counts. TotalShipments counts
// shipments across all of the user's customers; the service fills it in
// from the shipment repository.
type CustomerStats struct {
	Total          int64 `json:"total"`
	WithEmail      int64 `json:"with_email"`
	RecentlyAdded  int64 `json:"recently_added"` // created within the last 30 days
	TotalShipments int64 `json:"total_shipments"`
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	// FindByID fetches by primary key only; ownership is asserted by the
	// service on the returned record.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	FindByPhone(ctx context.Context, userID uuid.UUID, phone string) (*domain.Customer, error)
	// List returns a page of customers matching filter and the total count.
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteMany removes all given ids in a single statement.
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (*CustomerStats, error)
}
