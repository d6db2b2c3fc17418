package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// ShipmentRepository persists shipments.
type ShipmentRepository struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	var s domain.Shipment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShipmentRepository) List(ctx context.Context, f ports.ListShipmentsFilter) ([]*domain.Shipment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Shipment{}).Where("user_id = ?", f.UserID)
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Mode != "" {
		q = q.Where("mode = ?", f.Mode)
	}
	if f.Delivered != nil {
		q = q.Where("is_delivered = ?", *f.Delivered)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("start_location ILIKE ? OR end_location ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	shipments := []*domain.Shipment{}
	err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&shipments).Error
	if err != nil {
		return nil, 0, err
	}
	return shipments, total, nil
}

func (r *ShipmentRepository) Update(ctx context.Context, s *domain.Shipment) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Shipment{}, "id = ?", id).Error
}

// DeleteMany removes all ids in one statement so the batch is atomic.
func (r *ShipmentRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Shipment{}, "id IN ?", ids).Error
}

func (r *ShipmentRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Shipment{}).
		Where("customer_id = ?", customerID).
		Count(&n).Error
	return n, err
}

func (r *ShipmentRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Shipment{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (r *ShipmentRepository) Stats(ctx context.Context, userID uuid.UUID) (*ports.ShipmentStats, error) {
	var totals struct {
		Total       int64
		Delivered   int64
		TotalCost   decimal.Decimal
		TotalAmount decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&domain.Shipment{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_delivered) AS delivered,
			COALESCE(SUM(cost), 0) AS total_cost,
			COALESCE(SUM(calculated_total), 0) AS total_amount`).
		Where("user_id = ?", userID).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	stats := &ports.ShipmentStats{
		Total:       totals.Total,
		Delivered:   totals.Delivered,
		Pending:     totals.Total - totals.Delivered,
		TotalCost:   totals.TotalCost,
		TotalAmount: totals.TotalAmount,
		ByType:      make(map[domain.ShipmentType]int64),
		ByMode:      make(map[domain.ShipmentMode]int64),
	}

	var byType []struct {
		Type  domain.ShipmentType
		Count int64
	}
	err = r.db.WithContext(ctx).Model(&domain.Shipment{}).
		Select("type, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&byType).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byType {
		stats.ByType[row.Type] = row.Count
	}

	var byMode []struct {
		Mode  domain.ShipmentMode
		Count int64
	}
	err = r.db.WithContext(ctx).Model(&domain.Shipment{}).
		Select("mode, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("mode").
		Scan(&byMode).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byMode {
		stats.ByMode[row.Mode] = row.Count
	}

	return stats, nil
}
