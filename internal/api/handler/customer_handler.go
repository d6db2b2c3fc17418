package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shipsy/shipsy-api/internal/api/metrics"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customer operations.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create handles POST /api/customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.service.Create(c.Request().Context(), userID, ports.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("customer").Inc()
	return respond(c, http.StatusCreated, "customer created", newCustomerResponse(customer))
}

// List handles GET /api/customers with page, limit and search parameters.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Rows per page, capped at 100"
// @Param        search  query     string  false  "Match on name, phone or email"
// @Success      200     {object}  Envelope
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), userID, ports.ListCustomersFilter{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "ok",
		newCustomerListResponse(result.Items, result.Total, result.Page, result.Limit, result.TotalPages))
}

// Search handles GET /api/customers/search?q=. It is List with the query
// parameter the frontend's debounced search box sends.
//
// @Summary      Search customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  true   "Search term"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Rows per page, capped at 100"
// @Success      200    {object}  Envelope
// @Router       /api/customers/search [get]
func (h *CustomerHandler) Search(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), userID, ports.ListCustomersFilter{
		Search: c.QueryParam("q"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "ok",
		newCustomerListResponse(result.Items, result.Total, result.Page, result.Limit, result.TotalPages))
}

// Stats handles GET /api/customers/stats.
//
// @Summary      Customer statistics
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Router       /api/customers/stats [get]
func (h *CustomerHandler) Stats(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "ok", stats)
}

// Get handles GET /api/customers/:id.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	customer, err := h.service.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "ok", newCustomerResponse(customer))
}

// Update handles PUT /api/customers/:id.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Customer id"
// @Param        body  body      updateCustomerRequest  true  "Fields to update"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.service.Update(c.Request().Context(), userID, id, ports.UpdateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "customer updated", newCustomerResponse(customer))
}

// Delete handles DELETE /api/customers/:id.
//
// @Summary      Delete a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Failure      409  {object}  Envelope
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "customer deleted", nil)
}

// BulkDelete handles POST /api/customers/bulk-delete. All-or-nothing: one
// bad id rejects the whole batch.
//
// @Summary      Bulk-delete customers
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkDeleteRequest  true  "Ids to delete"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/customers/bulk-delete [post]
func (h *CustomerHandler) BulkDelete(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req bulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "record not found")
		}
		ids = append(ids, id)
	}

	deleted, err := h.service.BulkDelete(c.Request().Context(), userID, ids)
	if err != nil {
		metrics.BulkDeletesTotal.WithLabelValues("customer", "rejected").Inc()
		return err
	}
	metrics.BulkDeletesTotal.WithLabelValues("customer", "success").Inc()
	return respond(c, http.StatusOK, "customers deleted", bulkDeleteResponse{Deleted: deleted})
}
