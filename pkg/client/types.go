package client

import (
	"encoding/json"
	"fmt"
	"time"
)

// APIError is a non-2xx response decoded from the server envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (%d %s)", e.Message, e.StatusCode, e.Code)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// --- Account types ---

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Session struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
}

type UpdateProfileInput struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// --- Customer types ---

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCustomerInput struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Email   *string `json:"email,omitempty"`
}

type UpdateCustomerInput struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Email   *string `json:"email,omitempty"`
}

type CustomerStats struct {
	Total          int64 `json:"total"`
	WithEmail      int64 `json:"with_email"`
	RecentlyAdded  int64 `json:"recently_added"`
	TotalShipments int64 `json:"total_shipments"`
}

// --- Shipment types ---

// Monetary fields are fixed-point decimal strings with two fractional
// digits, matching what the server renders.
type Shipment struct {
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

type CreateShipmentInput struct {
	CustomerID            string     `json:"customer_id"`
	Type                  string     `json:"type"`
	Mode                  string     `json:"mode"`
	StartLocation         string     `json:"start_location"`
	EndLocation           string     `json:"end_location"`
	Cost                  string     `json:"cost"`
	CalculatedTotal       string     `json:"calculated_total"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
}

type UpdateShipmentInput struct {
	CustomerID            *string    `json:"customer_id,omitempty"`
	Type                  *string    `json:"type,omitempty"`
	Mode                  *string    `json:"mode,omitempty"`
	StartLocation         *string    `json:"start_location,omitempty"`
	EndLocation           *string    `json:"end_location,omitempty"`
	Cost                  *string    `json:"cost,omitempty"`
	CalculatedTotal       *string    `json:"calculated_total,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
}

type ShipmentStats struct {
	Total       int64            `json:"total"`
	Delivered   int64            `json:"delivered"`
	Pending     int64            `json:"pending"`
	TotalCost   string           `json:"total_cost"`
	TotalAmount string           `json:"total_amount"`
	ByType      map[string]int64 `json:"by_type"`
	ByMode      map[string]int64 `json:"by_mode"`
}

// --- Shared list types ---

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type CustomerPage struct {
	Items      []Customer `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type ShipmentPage struct {
	Items      []Shipment `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// ListOptions are the shared query parameters of list and search endpoints.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

// ShipmentListOptions extends ListOptions with shipment filters.
type ShipmentListOptions struct {
	ListOptions
	CustomerID string
	Type       string
	Mode       string
	Delivered  *bool
}
