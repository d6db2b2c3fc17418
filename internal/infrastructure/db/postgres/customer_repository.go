package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// CustomerRepository persists customers.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, userID uuid.UUID, phone string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).Where("user_id = ? AND phone = ?", userID, phone).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, f ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("user_id = ?", f.UserID)
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	customers := []*domain.Customer{}
	err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	err := r.db.WithContext(ctx).Save(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id).Error
}

// DeleteMany removes all ids in one statement so the batch is atomic.
func (r *CustomerRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Customer{}, "id IN ?", ids).Error
}

func (r *CustomerRepository) Stats(ctx context.Context, userID uuid.UUID) (*ports.CustomerStats, error) {
	stats := &ports.CustomerStats{}
	base := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("user_id = ?", userID)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("email IS NOT NULL AND email <> ''").
		Count(&stats.WithEmail).Error; err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, -30)
	if err := base.Session(&gorm.Session{}).
		Where("created_at >= ?", cutoff).
		Count(&stats.RecentlyAdded).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
