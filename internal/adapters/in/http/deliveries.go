package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type assignDeliveryRequest struct {
	OrderID       string  `json:"order_id"`
	DropoffLat    float64 `json:"dropoff_lat"`
	DropoffLon    float64 `json:"dropoff_lon"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
}

type assignDeliveryResponse struct {
	DeliveryID   string `json:"delivery_id"`
	RiderID      string `json:"rider_id"`
	TrackingCode string `json:"tracking_code"`
}

// AssignDelivery handles POST /deliveries/assign. Repeating the call for an
// order that already has a delivery returns the existing assignment.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	var req assignDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("invalid request body", err))
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}
	dropoff, err := kernel.NewGeoPoint(req.DropoffLat, req.DropoffLon)
	if err != nil {
		return writeError(ctx, err)
	}
	contact, err := kernel.NewContact(req.CustomerName, req.CustomerPhone, "")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignDeliveryCommand(kernel.NewUUID(), orderID, dropoff, contact)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.assignDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, assignDeliveryResponse{
		DeliveryID:   result.DeliveryID.String(),
		RiderID:      result.RiderID.String(),
		TrackingCode: result.TrackingCode,
	})
}

type updateDeliveryStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDeliveryStatus handles PATCH /deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateDeliveryStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("invalid request body", err))
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateDeliveryStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"delivery_id": deliveryID.String(),
		"status":      req.Status,
	})
}

// GetDelivery handles GET /deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveries handles GET /deliveries?status=&rider_id=&page=&limit=.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	var riderID *kernel.UUID
	if raw := ctx.QueryParam("rider_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		riderID = &id
	}

	limit := intQueryParam(ctx, "limit", 20)
	page := intQueryParam(ctx, "page", 1)
	if page < 1 {
		page = 1
	}

	query, err := queries.NewGetDeliveriesQuery(ctx.QueryParam("status"), riderID, limit, (page-1)*limit)
	if err != nil {
		return writeError(ctx, err)
	}

	responses, err := s.getDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"deliveries": responses,
		"page":       page,
		"limit":      query.Limit(),
	})
}

// TrackDelivery handles GET /track/:code, the public tracking endpoint.
func (s *Server) TrackDelivery(ctx echo.Context) error {
	query, err := queries.NewTrackDeliveryQuery(ctx.Param("code"))
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.trackDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}
