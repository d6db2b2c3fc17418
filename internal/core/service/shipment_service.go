package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// ShipmentService implements shipment CRUD scoped to the calling user.
type ShipmentService struct {
	shipments ports.ShipmentRepository
	customers ports.CustomerRepository
	logger    zerolog.Logger
}

func NewShipmentService(shipments ports.ShipmentRepository, customers ports.CustomerRepository, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{shipments: shipments, customers: customers, logger: logger}
}

func (s *ShipmentService) Create(ctx context.Context, userID uuid.UUID, input ports.CreateShipmentInput) (*domain.Shipment, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown shipment type %q", domain.ErrValidation, input.Type)
	}
	if !input.Mode.Valid() {
		return nil, fmt.Errorf("%w: unknown shipment mode %q", domain.ErrValidation, input.Mode)
	}
	if input.CalculatedTotal.LessThan(input.Cost) {
		return nil, fmt.Errorf("%w: calculated total must not be below cost", domain.ErrValidation)
	}

	// The referenced customer must exist and belong to the same user.
	customer, err := s.customers.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := assertOwned(customer, userID); err != nil {
		return nil, err
	}

	shipment := &domain.Shipment{
		ID:                    uuid.New(),
		UserID:                userID,
		CustomerID:            input.CustomerID,
		Type:                  input.Type,
		Mode:                  input.Mode,
		StartLocation:         input.StartLocation,
		EndLocation:           input.EndLocation,
		Cost:                  input.Cost,
		CalculatedTotal:       input.CalculatedTotal,
		EstimatedDeliveryDate: input.EstimatedDeliveryDate,
	}
	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("shipment_id", shipment.ID.String()).
		Str("user_id", userID.String()).
		Str("type", string(shipment.Type)).
		Msg("shipment created")
	return shipment, nil
}

func (s *ShipmentService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Shipment, error) {
	shipment, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertOwned(shipment, userID); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *ShipmentService) List(ctx context.Context, userID uuid.UUID, filter ports.ListShipmentsFilter) (*ports.ShipmentPage, error) {
	filter.UserID = userID
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.shipments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ShipmentPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *ShipmentService) Update(ctx context.Context, userID, id uuid.UUID, input ports.UpdateShipmentInput) (*domain.Shipment, error) {
	shipment, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil && *input.CustomerID != shipment.CustomerID {
		customer, err := s.customers.FindByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if err := assertOwned(customer, userID); err != nil {
			return nil, err
		}
		shipment.CustomerID = *input.CustomerID
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown shipment type %q", domain.ErrValidation, *input.Type)
		}
		shipment.Type = *input.Type
	}
	if input.Mode != nil {
		if !input.Mode.Valid() {
			return nil, fmt.Errorf("%w: unknown shipment mode %q", domain.ErrValidation, *input.Mode)
		}
		shipment.Mode = *input.Mode
	}
	if input.StartLocation != nil {
		shipment.StartLocation = *input.StartLocation
	}
	if input.EndLocation != nil {
		shipment.EndLocation = *input.EndLocation
	}
	if input.Cost != nil {
		shipment.Cost = *input.Cost
	}
	if input.CalculatedTotal != nil {
		shipment.CalculatedTotal = *input.CalculatedTotal
	}
	if input.EstimatedDeliveryDate != nil {
		shipment.EstimatedDeliveryDate = input.EstimatedDeliveryDate
	}

	if shipment.CalculatedTotal.LessThan(shipment.Cost) {
		return nil, fmt.Errorf("%w: calculated total must not be below cost", domain.ErrValidation)
	}

	if err := s.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *ShipmentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.shipments.Delete(ctx, id)
}

// BulkDelete verifies ownership of every id before deleting anything. One
// foreign or unknown id rejects the whole batch.
func (s *ShipmentService) BulkDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	ids = dedupeIDs(ids)
	for _, id := range ids {
		if _, err := s.Get(ctx, userID, id); err != nil {
			return 0, err
		}
	}

	if err := s.shipments.DeleteMany(ctx, ids); err != nil {
		return 0, err
	}

	s.logger.Info().Int("count", len(ids)).Str("user_id", userID.String()).Msg("shipments bulk-deleted")
	return len(ids), nil
}

// MarkDelivered flips the delivery flag and stamps the delivery date.
// Re-delivering is a no-op: the original delivery date is preserved.
func (s *ShipmentService) MarkDelivered(ctx context.Context, userID, id uuid.UUID, deliveryDate *time.Time) (*domain.Shipment, error) {
	shipment, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if shipment.IsDelivered {
		return shipment, nil
	}

	now := time.Now().UTC()
	if deliveryDate == nil {
		deliveryDate = &now
	}
	shipment.IsDelivered = true
	shipment.DeliveryDate = deliveryDate

	if err := s.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *ShipmentService) Stats(ctx context.Context, userID uuid.UUID) (*ports.ShipmentStats, error) {
	return s.shipments.Stats(ctx, userID)
}
