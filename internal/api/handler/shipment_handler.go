package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shipsy/shipsy-api/internal/api/metrics"
	"github.com/shipsy/shipsy-api/internal/core/domain"
	"github.com/shipsy/shipsy-api/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /api/shipments.
//
// @Summary      Create a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	}

	shipment, err := h.service.Create(c.Request().Context(), userID, ports.CreateShipmentInput{
		CustomerID:            customerID,
		Type:                  domain.ShipmentType(req.Type),
		Mode:                  domain.ShipmentMode(req.Mode),
		StartLocation:         req.StartLocation,
		EndLocation:           req.EndLocation,
		Cost:                  req.Cost,
		CalculatedTotal:       req.CalculatedTotal,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("shipment").Inc()
	return respond(c, http.StatusCreated, "shipment created", newShipmentResponse(shipment))
}

// List handles GET /api/shipments with filter, page and limit parameters.
//
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Rows per page, capped at 100"
// @Param        type         query     string  false  "LOCAL, NATIONAL or INTERNATIONAL"
// @Param        mode         query     string  false  "LAND, AIR or WATER"
// @Param        delivered    query     bool    false  "Filter by delivery status"
// @Param        customer_id  query     string  false  "Filter by customer"
// @Param        search       query     string  false  "Match on start/end location"
// @Success      200          {object}  Envelope
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}

	filter, err := shipmentFilterFromQuery(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), userID, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "ok",
		newShipmentListResponse(result.Items, result.Total, result.Page, result.Limit, result.TotalPages))
}

// Search handles GET /api/shipments/search?q=.
//
// @Summary      Search shipments
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  true   "Search term"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Rows per page, capped at 100"
// @Success      200    {object}  Envelope
// @Router       /api/shipments/search [get]
func (h *ShipmentHandler) Search(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), userID, ports.ListShipmentsFilter{
		Search: c.QueryParam("q"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "ok",
		newShipmentListResponse(result.Items, result.Total, result.Page, result.Limit, result.TotalPages))
}

// Stats handles GET /api/shipments/stats.
//
// @Summary      Shipment statistics
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Router       /api/shipments/stats [get]
func (h *ShipmentHandler) Stats(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "ok", newShipmentStatsResponse(stats))
}

// Get handles GET /api/shipments/:id.
//
// @Summary      Get a shipment
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shipment id"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	shipment, err := h.service.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "ok", newShipmentResponse(shipment))
}

// Update handles PUT /api/shipments/:id.
//
// @Summary      Update a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Shipment id"
// @Param        body  body      updateShipmentRequest  true  "Fields to update"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/shipments/{id} [put]
func (h *ShipmentHandler) Update(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.UpdateShipmentInput{
		StartLocation:         req.StartLocation,
		EndLocation:           req.EndLocation,
		Cost:                  req.Cost,
		CalculatedTotal:       req.CalculatedTotal,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
	}
	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "record not found")
		}
		input.CustomerID = &customerID
	}
	if req.Type != nil {
		t := domain.ShipmentType(*req.Type)
		input.Type = &t
	}
	if req.Mode != nil {
		m := domain.ShipmentMode(*req.Mode)
		input.Mode = &m
	}

	shipment, err := h.service.Update(c.Request().Context(), userID, id, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "shipment updated", newShipmentResponse(shipment))
}

// MarkDelivered handles PATCH /api/shipments/:id/deliver.
//
// @Summary      Mark a shipment delivered
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true   "Shipment id"
// @Param        body  body      markDeliveredRequest  false  "Optional delivery date"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/shipments/{id}/deliver [patch]
func (h *ShipmentHandler) MarkDelivered(c echo.Context) error {
	userID, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req markDeliveredRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	shipment, err := h.service.MarkDelivered(c.Request().Context(), userID, id, req.DeliveryDate)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "shipment delivered", newShipmentResponse(shipment))
}

// Delete handles DELETE /api/shipments/:id.
//
// @Summary      Delete a shipment
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shipment id"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c echo.Context) error {
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
	return respond(c, http.StatusOK, "shipment deleted", nil)
}

// BulkDelete handles POST /api/shipments/bulk-delete. All-or-nothing.
//
// @Summary      Bulk-delete shipments
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkDeleteRequest  true  "Ids to delete"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/shipments/bulk-delete [post]
func (h *ShipmentHandler) BulkDelete(c echo.Context) error {
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
		metrics.BulkDeletesTotal.WithLabelValues("shipment", "rejected").Inc()
		return err
	}
	metrics.BulkDeletesTotal.WithLabelValues("shipment", "success").Inc()
	return respond(c, http.StatusOK, "shipments deleted", bulkDeleteResponse{Deleted: deleted})
}

// shipmentFilterFromQuery parses the list query parameters shared with Search.
func shipmentFilterFromQuery(c echo.Context) (ports.ListShipmentsFilter, error) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := ports.ListShipmentsFilter{
		Type:   c.QueryParam("type"),
		Mode:   c.QueryParam("mode"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	}

	if raw := c.QueryParam("delivered"); raw != "" {
		delivered, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "delivered must be a boolean")
		}
		filter.Delivered = &delivered
	}
	if raw := c.QueryParam("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "customer_id must be a uuid")
		}
		filter.CustomerID = &customerID
	}
	return filter, nil
}
