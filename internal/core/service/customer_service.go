package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// CustomerService implements customer CRUD scoped to the calling user.
type CustomerService struct {
	customers ports.CustomerRepository
	shipments ports.ShipmentRepository
	logger    zerolog.Logger
}

func NewCustomerService(customers ports.CustomerRepository, shipments ports.ShipmentRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, shipments: shipments, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, userID uuid.UUID, input ports.CreateCustomerInput) (*domain.Customer, error) {
	// Pre-check for a friendlier error; the composite unique index on
	// (user_id, phone) is the real guarantee and the repository translates
	// its violation into ErrConflict too.
	if _, err := s.customers.FindByPhone(ctx, userID, input.Phone); err == nil {
		return nil, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	customer := &domain.Customer{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Email:   input.Email,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("customer_id", customer.ID.String()).Str("user_id", userID.String()).Msg("customer created")
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertOwned(customer, userID); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context, userID uuid.UUID, filter ports.ListCustomersFilter) (*ports.CustomerPage, error) {
	filter.UserID = userID
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.CustomerPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *CustomerService) Update(ctx context.Context, userID, id uuid.UUID, input ports.UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil && *input.Phone != customer.Phone {
		if existing, err := s.customers.FindByPhone(ctx, userID, *input.Phone); err == nil && existing.ID != id {
			return nil, domain.ErrConflict
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		customer.Phone = *input.Phone
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Email != nil {
		customer.Email = input.Email
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	// Restrict semantics: a customer still referenced by shipments cannot go.
	n, err := s.shipments.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCustomerHasShipments
	}

	return s.customers.Delete(ctx, id)
}

// BulkDelete verifies ownership of every id before deleting anything. One
// foreign or unknown id rejects the whole batch.
func (s *CustomerService) BulkDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	ids = dedupeIDs(ids)
	for _, id := range ids {
		if _, err := s.Get(ctx, userID, id); err != nil {
			return 0, err
		}
		n, err := s.shipments.CountByCustomer(ctx, id)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return 0, domain.ErrCustomerHasShipments
		}
	}

	if err := s.customers.DeleteMany(ctx, ids); err != nil {
		return 0, err
	}

	s.logger.Info().Int("count", len(ids)).Str("user_id", userID.String()).Msg("customers bulk-deleted")
	return len(ids), nil
}

// Stats combines the customer aggregates with the user's shipment total so
// the dashboard gets both from one call.
func (s *CustomerService) Stats(ctx context.Context, userID uuid.UUID) (*ports.CustomerStats, error) {
	stats, err := s.customers.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.TotalShipments, err = s.shipments.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
