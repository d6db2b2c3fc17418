package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// --- Request types ---

// Monetary fields bind through shopspring/decimal, which accepts both JSON
// numbers and strings ("110.00"). The total-vs-cost invariant is enforced by
// the service, not the schema.

type createShipmentRequest struct {
	CustomerID            string          `json:"customer_id"    validate:"required,uuid"`
	Type                  string          `json:"type"           validate:"required,oneof=LOCAL NATIONAL INTERNATIONAL"`
	Mode                  string          `json:"mode"           validate:"required,oneof=LAND AIR WATER"`
	StartLocation         string          `json:"start_location" validate:"required"`
	EndLocation           string          `json:"end_location"   validate:"required"`
	Cost                  decimal.Decimal `json:"cost"`
	CalculatedTotal       decimal.Decimal `json:"calculated_total"`
	EstimatedDeliveryDate *time.Time      `json:"estimated_delivery_date"`
}

type updateShipmentRequest struct {
	CustomerID            *string          `json:"customer_id"    validate:"omitempty,uuid"`
	Type                  *string          `json:"type"           validate:"omitempty,oneof=LOCAL NATIONAL INTERNATIONAL"`
	Mode                  *string          `json:"mode"           validate:"omitempty,oneof=LAND AIR WATER"`
	StartLocation         *string          `json:"start_location" validate:"omitempty,min=1"`
	EndLocation           *string          `json:"end_location"   validate:"omitempty,min=1"`
	Cost                  *decimal.Decimal `json:"cost"`
	CalculatedTotal       *decimal.Decimal `json:"calculated_total"`
	EstimatedDeliveryDate *time.Time       `json:"estimated_delivery_date"`
}

type markDeliveredRequest struct {
	DeliveryDate *time.Time `json:"delivery_date"`
}

// --- Response types ---

// shipmentResponse renders monetary values as fixed-point strings with two
// fractional digits so "110.00" survives the round trip exactly.
type shipmentResponse struct {
	ID                    string     `json:"id"`
	CustomerID            string     `json:"customer_id"`
	Type                  string     `json:"type"`
	Mode                  string     `json:"mode"`
	StartLocation         string     `json:"start_location"`
	EndLocation           string     `json:"end_location"`
	Cost                  string     `json:"cost"`
	CalculatedTotal       string     `json:"calculated_total"`
	IsDelivered           bool       `json:"is_delivered"`
	DeliveryDate          *time.Time `json:"delivery_date,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type shipmentListResponse struct {
	Items      []shipmentResponse `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

type shipmentStatsResponse struct {
	Total       int64            `json:"total"`
	Delivered   int64            `json:"delivered"`
	Pending     int64            `json:"pending"`
	TotalCost   string           `json:"total_cost"`
	TotalAmount string           `json:"total_amount"`
	ByType      map[string]int64 `json:"by_type"`
	ByMode      map[string]int64 `json:"by_mode"`
}

func newShipmentResponse(s *domain.Shipment) shipmentResponse {
	return shipmentResponse{
		ID:                    s.ID.String(),
		CustomerID:            s.CustomerID.String(),
		Type:                  string(s.Type),
		Mode:                  string(s.Mode),
		StartLocation:         s.StartLocation,
		EndLocation:           s.EndLocation,
		Cost:                  s.Cost.StringFixed(2),
		CalculatedTotal:       s.CalculatedTotal.StringFixed(2),
		IsDelivered:           s.IsDelivered,
		DeliveryDate:          s.DeliveryDate,
		EstimatedDeliveryDate: s.EstimatedDeliveryDate,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func newShipmentListResponse(items []*domain.Shipment, total int64, page, limit, totalPages int) shipmentListResponse {
	resp := shipmentListResponse{
		Items: make([]shipmentResponse, 0, len(items)),
		Pagination: paginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
	for _, s := range items {
		resp.Items = append(resp.Items, newShipmentResponse(s))
	}
	return resp
}

func newShipmentStatsResponse(stats *ports.ShipmentStats) shipmentStatsResponse {
	resp := shipmentStatsResponse{
		Total:       stats.Total,
		Delivered:   stats.Delivered,
		Pending:     stats.Pending,
		TotalCost:   stats.TotalCost.StringFixed(2),
		TotalAmount: stats.TotalAmount.StringFixed(2),
		ByType:      make(map[string]int64, len(stats.ByType)),
		ByMode:      make(map[string]int64, len(stats.ByMode)),
	}
	for t, n := range stats.ByType {
		resp.ByType[string(t)] = n
	}
	for m, n := range stats.ByMode {
		resp.ByMode[string(m)] = n
	}
	return resp
}
