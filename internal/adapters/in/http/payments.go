package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type initiatePaymentRequest struct {
	OrderID    string `json:"order_id"`
	PayerEmail string `json:"payer_email"`
}

type initiatePaymentResponse struct {
	PaymentID        string `json:"payment_id"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code,omitempty"`
}

// InitiatePayment handles POST /payments/initiate. Repeating the call for an
// order with an open payment returns the stored authorization handle.
func (s *Server) InitiatePayment(ctx echo.Context) error {
	var req initiatePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("invalid request body", err))
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewInitiatePaymentCommand(kernel.NewUUID(), orderID, req.PayerEmail)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.initiatePayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, initiatePaymentResponse{
		PaymentID:        result.PaymentID.String(),
		Reference:        result.Reference,
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
	})
}

// webhookRequest is the provider's callback envelope. Only the reference is
// taken from it; everything else is re-verified server side.
type webhookRequest struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// HandlePaymentWebhook handles POST /payments/webhook. Replayed callbacks for
// settled payments are acknowledged without touching anything.
func (s *Server) HandlePaymentWebhook(ctx echo.Context) error {
	var req webhookRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("invalid webhook body", err))
	}

	cmd, err := commands.NewConfirmPaymentCommand(req.Data.Reference)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.confirmPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetPayment handles GET /payments/:id.
func (s *Server) GetPayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPaymentQuery(paymentID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getPayment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPaymentByOrder handles GET /orders/:id/payment, returning the most
// recent payment attempt for the order.
func (s *Server) GetPaymentByOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPaymentByOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getPaymentByOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}
