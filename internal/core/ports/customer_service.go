package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// CreateCustomerInput carries the fields accepted at customer creation.
// Email is optional; everything else is required.
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Address string
	Email   *string
}

// UpdateCustomerInput uses pointers so omitted fields stay untouched.
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Address *string
	Email   *string
}

// CustomerPage is one page of customers plus pagination metadata.
type CustomerPage struct {
	Items      []*domain.Customer
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CustomerService implements customer operations scoped to the calling user.
type CustomerService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateCustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, userID uuid.UUID, filter ListCustomersFilter) (*CustomerPage, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// BulkDelete is all-or-nothing: if any id is absent or owned by another
	// user, nothing is deleted. Returns the number of deleted rows.
	BulkDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
	Stats(ctx context.Context, userID uuid.UUID) (*CustomerStats, error)
}
