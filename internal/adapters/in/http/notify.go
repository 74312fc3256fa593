package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type notifyRequest struct {
	Event      string              `json:"event"`
	Recipients map[string][]string `json:"recipients"`
	Data       map[string]string   `json:"data"`
}

type notifyResponse struct {
	Event   string                `json:"event"`
	Results []ports.ChannelResult `json:"results"`
}

// SendNotification handles POST /notify. Recipients are grouped by channel
// name; the response lists the delivery outcome per channel and recipient.
func (s *Server) SendNotification(ctx echo.Context) error {
	var req notifyRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("invalid request body", err))
	}

	cmd, err := commands.NewSendNotificationCommand(req.Event, req.Recipients, req.Data)
	if err != nil {
		return writeError(ctx, err)
	}

	results, err := s.sendNotification.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notifyResponse{Event: req.Event, Results: results})
}
