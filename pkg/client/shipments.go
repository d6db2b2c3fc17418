package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CreateShipment records a shipment for one of the caller's customers.
func (c *Client) CreateShipment(ctx context.Context, in CreateShipmentInput) (*Shipment, error) {
	return doJSON[Shipment](ctx, c, http.MethodPost, "/api/shipments", in)
}

// GetShipment fetches one shipment by id.
func (c *Client) GetShipment(ctx context.Context, id string) (*Shipment, error) {
	return doJSON[Shipment](ctx, c, http.MethodGet, "/api/shipments/"+url.PathEscape(id), nil)
}

// ListShipments returns a page of shipments with optional filters.
func (c *Client) ListShipments(ctx context.Context, opts ShipmentListOptions) (*ShipmentPage, error) {
	q := shipmentQuery(opts)
	return doJSON[ShipmentPage](ctx, c, http.MethodGet, "/api/shipments"+encodeQuery(q), nil)
}

// SearchShipments matches the term against start and end locations.
func (c *Client) SearchShipments(ctx context.Context, term string, opts ShipmentListOptions) (*ShipmentPage, error) {
	opts.Search = ""
	q := shipmentQuery(opts)
	q.Set("q", term)
	return doJSON[ShipmentPage](ctx, c, http.MethodGet, "/api/shipments/search"+encodeQuery(q), nil)
}

// ShipmentStats returns aggregate figures over the caller's shipments.
func (c *Client) ShipmentStats(ctx context.Context) (*ShipmentStats, error) {
	return doJSON[ShipmentStats](ctx, c, http.MethodGet, "/api/shipments/stats", nil)
}

// UpdateShipment applies a partial update. Nil fields are left untouched.
func (c *Client) UpdateShipment(ctx context.Context, id string, in UpdateShipmentInput) (*Shipment, error) {
	return doJSON[Shipment](ctx, c, http.MethodPut, "/api/shipments/"+url.PathEscape(id), in)
}

// MarkDelivered flags a shipment as delivered. When deliveredAt is nil the
// server stamps the current time; marking an already delivered shipment is
// a no-op.
func (c *Client) MarkDelivered(ctx context.Context, id string, deliveredAt *time.Time) (*Shipment, error) {
	in := map[string]*time.Time{"delivery_date": deliveredAt}
	return doJSON[Shipment](ctx, c, http.MethodPatch, "/api/shipments/"+url.PathEscape(id)+"/deliver", in)
}

// DeleteShipment removes a shipment.
func (c *Client) DeleteShipment(ctx context.Context, id string) error {
	_, err := doJSON[struct{}](ctx, c, http.MethodDelete, "/api/shipments/"+url.PathEscape(id), nil)
	return err
}

// BulkDeleteShipments deletes a batch of shipments. The batch is
// all-or-nothing; it returns the number deleted.
func (c *Client) BulkDeleteShipments(ctx context.Context, ids []string) (int, error) {
	in := map[string][]string{"ids": ids}
	type result struct {
		Deleted int `json:"deleted"`
	}
	res, err := doJSON[result](ctx, c, http.MethodPost, "/api/shipments/bulk-delete", in)
	if err != nil {
		return 0, err
	}
	return res.Deleted, nil
}

func shipmentQuery(opts ShipmentListOptions) url.Values {
	q := listQuery(opts.ListOptions)
	if opts.CustomerID != "" {
		q.Set("customer_id", opts.CustomerID)
	}
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	if opts.Mode != "" {
		q.Set("mode", opts.Mode)
	}
	if opts.Delivered != nil {
		q.Set("delivered", strconv.FormatBool(*opts.Delivered))
	}
	return q
}
