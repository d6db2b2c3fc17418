package handler

import (
	"time"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// --- Request types ---

type createCustomerRequest struct {
	Name    string  `json:"name"    validate:"required"`
	Phone   string  `json:"phone"   validate:"required,min=7"`
	Address string  `json:"address" validate:"required"`
	Email   *string `json:"email"   validate:"omitempty,email"`
}

type updateCustomerRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1"`
	Phone   *string `json:"phone"   validate:"omitempty,min=7"`
	Address *string `json:"address" validate:"omitempty,min=1"`
	Email   *string `json:"email"   validate:"omitempty,email"`
}

// bulkDeleteRequest is shared by customers and shipments.
type bulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// --- Response types ---

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// paginationResponse is the shared page metadata block of all list responses.
type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type customerListResponse struct {
	Items      []customerResponse `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

type bulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

func newCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newCustomerListResponse(items []*domain.Customer, total int64, page, limit, totalPages int) customerListResponse {
	resp := customerListResponse{
		Items: make([]customerResponse, 0, len(items)),
		Pagination: paginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
	for _, c := range items {
		resp.Items = append(resp.Items, newCustomerResponse(c))
	}
	return resp
}
