package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[uuid.UUID]*domain.User
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uuid.UUID]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

type stubTokenStore struct {
	hashes  map[string]string // userID/tokenID -> token hash
	saveErr error
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{hashes: make(map[string]string)}
}

func (s *stubTokenStore) key(userID uuid.UUID, tokenID string) string {
	return userID.String() + "/" + tokenID
}

func (s *stubTokenStore) Save(_ context.Context, userID uuid.UUID, tokenID, tokenHash string, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.hashes[s.key(userID, tokenID)] = tokenHash
	return nil
}

func (s *stubTokenStore) Validate(_ context.Context, userID uuid.UUID, tokenID, tokenHash string) error {
	if stored, ok := s.hashes[s.key(userID, tokenID)]; !ok || stored != tokenHash {
		return domain.ErrInvalidToken
	}
	return nil
}

func (s *stubTokenStore) Revoke(_ context.Context, userID uuid.UUID, tokenID string) error {
	delete(s.hashes, s.key(userID, tokenID))
	return nil
}

type stubCustomerRepo struct {
	byID  map[uuid.UUID]*domain.Customer
	order []uuid.UUID // insertion order, stands in for created_at sorting
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byID: make(map[uuid.UUID]*domain.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	clone := *c
	r.byID[c.ID] = &clone
	r.order = append(r.order, c.ID)
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) FindByPhone(_ context.Context, userID uuid.UUID, phone string) (*domain.Customer, error) {
	for _, c := range r.byID {
		if c.UserID == userID && c.Phone == phone {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubCustomerRepo) List(_ context.Context, f ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	var matched []*domain.Customer
	for _, id := range r.order {
		c, ok := r.byID[id]
		if !ok || c.UserID != f.UserID {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			email := ""
			if c.Email != nil {
				email = *c.Email
			}
			if !strings.Contains(strings.ToLower(c.Name), q) &&
				!strings.Contains(c.Phone, f.Search) &&
				!strings.Contains(strings.ToLower(email), q) {
				continue
			}
		}
		clone := *c
		matched = append(matched, &clone)
	}

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start >= len(matched) {
		return []*domain.Customer{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *stubCustomerRepo) DeleteMany(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.byID, id)
	}
	return nil
}

func (r *stubCustomerRepo) Stats(_ context.Context, userID uuid.UUID) (*ports.CustomerStats, error) {
	stats := &ports.CustomerStats{}
	cutoff := time.Now().AddDate(0, 0, -30)
	for _, c := range r.byID {
		if c.UserID != userID {
			continue
		}
		stats.Total++
		if c.Email != nil {
			stats.WithEmail++
		}
		if c.CreatedAt.After(cutoff) {
			stats.RecentlyAdded++
		}
	}
	return stats, nil
}

type stubShipmentRepo struct {
	byID  map[uuid.UUID]*domain.Shipment
	order []uuid.UUID
}

func newStubShipmentRepo() *stubShipmentRepo {
	return &stubShipmentRepo{byID: make(map[uuid.UUID]*domain.Shipment)}
}

func (r *stubShipmentRepo) Create(_ context.Context, s *domain.Shipment) error {
	clone := *s
	r.byID[s.ID] = &clone
	r.order = append(r.order, s.ID)
	return nil
}

func (r *stubShipmentRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Shipment, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubShipmentRepo) List(_ context.Context, f ports.ListShipmentsFilter) ([]*domain.Shipment, int64, error) {
	var matched []*domain.Shipment
	for _, id := range r.order {
		s, ok := r.byID[id]
		if !ok || s.UserID != f.UserID {
			continue
		}
		if f.CustomerID != nil && s.CustomerID != *f.CustomerID {
			continue
		}
		if f.Type != "" && string(s.Type) != f.Type {
			continue
		}
		if f.Mode != "" && string(s.Mode) != f.Mode {
			continue
		}
		if f.Delivered != nil && s.IsDelivered != *f.Delivered {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(s.StartLocation), q) &&
				!strings.Contains(strings.ToLower(s.EndLocation), q) {
				continue
			}
		}
		clone := *s
		matched = append(matched, &clone)
	}

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start >= len(matched) {
		return []*domain.Shipment{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubShipmentRepo) Update(_ context.Context, s *domain.Shipment) error {
	if _, ok := r.byID[s.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubShipmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *stubShipmentRepo) DeleteMany(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.byID, id)
	}
	return nil
}

func (r *stubShipmentRepo) CountByCustomer(_ context.Context, customerID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.byID {
		if s.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *stubShipmentRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.byID {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubShipmentRepo) Stats(_ context.Context, userID uuid.UUID) (*ports.ShipmentStats, error) {
	stats := &ports.ShipmentStats{
		TotalCost:   decimal.Zero,
		TotalAmount: decimal.Zero,
		ByType:      make(map[domain.ShipmentType]int64),
		ByMode:      make(map[domain.ShipmentMode]int64),
	}
	for _, s := range r.byID {
		if s.UserID != userID {
			continue
		}
		stats.Total++
		if s.IsDelivered {
			stats.Delivered++
		} else {
			stats.Pending++
		}
		stats.TotalCost = stats.TotalCost.Add(s.Cost)
		stats.TotalAmount = stats.TotalAmount.Add(s.CalculatedTotal)
		stats.ByType[s.Type]++
		stats.ByMode[s.Mode]++
	}
	return stats, nil
}
