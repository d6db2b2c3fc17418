package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateCustomer adds a customer to the caller's workspace.
func (c *Client) CreateCustomer(ctx context.Context, in CreateCustomerInput) (*Customer, error) {
	return doJSON[Customer](ctx, c, http.MethodPost, "/api/customers", in)
}

// GetCustomer fetches one customer by id.
func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	return doJSON[Customer](ctx, c, http.MethodGet, "/api/customers/"+url.PathEscape(id), nil)
}

// ListCustomers returns a page of customers, optionally filtered by a search
// term over name, phone and email.
func (c *Client) ListCustomers(ctx context.Context, opts ListOptions) (*CustomerPage, error) {
	q := listQuery(opts)
	return doJSON[CustomerPage](ctx, c, http.MethodGet, "/api/customers"+encodeQuery(q), nil)
}

// SearchCustomers is the dedicated search endpoint the UI's search box hits.
func (c *Client) SearchCustomers(ctx context.Context, term string, opts ListOptions) (*CustomerPage, error) {
	opts.Search = ""
	q := listQuery(opts)
	q.Set("q", term)
	return doJSON[CustomerPage](ctx, c, http.MethodGet, "/api/customers/search"+encodeQuery(q), nil)
}

// CustomerStats returns aggregate counts over the caller's customers.
func (c *Client) CustomerStats(ctx context.Context) (*CustomerStats, error) {
	return doJSON[CustomerStats](ctx, c, http.MethodGet, "/api/customers/stats", nil)
}

// UpdateCustomer applies a partial update. Nil fields are left untouched.
func (c *Client) UpdateCustomer(ctx context.Context, id string, in UpdateCustomerInput) (*Customer, error) {
	return doJSON[Customer](ctx, c, http.MethodPut, "/api/customers/"+url.PathEscape(id), in)
}

// DeleteCustomer removes a customer. Customers with shipments are refused.
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	_, err := doJSON[struct{}](ctx, c, http.MethodDelete, "/api/customers/"+url.PathEscape(id), nil)
	return err
}

// BulkDeleteCustomers deletes a batch of customers. The batch is
// all-or-nothing; it returns the number deleted.
func (c *Client) BulkDeleteCustomers(ctx context.Context, ids []string) (int, error) {
	in := map[string][]string{"ids": ids}
	type result struct {
		Deleted int `json:"deleted"`
	}
	res, err := doJSON[result](ctx, c, http.MethodPost, "/api/customers/bulk-delete", in)
	if err != nil {
		return 0, err
	}
	return res.Deleted, nil
}

func listQuery(opts ListOptions) url.Values {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	return q
}

func encodeQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	return fmt.Sprintf("?%s", q.Encode())
}
