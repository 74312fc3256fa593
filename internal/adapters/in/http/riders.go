package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type registerRiderRequest struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	VehicleType   string  `json:"vehicle_type"`
	VehicleNumber string  `json:"vehicle_number"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
}

// RegisterRider handles POST /riders.
func (s *Server) RegisterRider(ctx echo.Context) error {
	var req registerRiderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("invalid request body", err))
	}

	contact, err := kernel.NewContact(req.Name, req.Phone, req.Email)
	if err != nil {
		return writeError(ctx, err)
	}
	position, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	riderID := kernel.NewUUID()
	cmd, err := commands.NewRegisterRiderCommand(riderID, contact, req.VehicleType, req.VehicleNumber, position)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.registerRider.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"rider_id": riderID.String()})
}

type updateRiderLocationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// UpdateRiderLocation handles PATCH /riders/:id/location.
func (s *Server) UpdateRiderLocation(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateRiderLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("invalid request body", err))
	}

	position, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateRiderLocationCommand(riderID, position)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateRiderLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
