package http

import (
	"net/http"
	"strconv"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type createOrderRequest struct {
	BuyerID    string `json:"buyer_id"`
	PartID     string `json:"part_id"`
	Quantity   int    `json:"quantity"`
	BuyerEmail string `json:"buyer_email"`
	Address    struct {
		Line   string `json:"line"`
		City   string `json:"city"`
		Region string `json:"region"`
	} `json:"address"`
}

type createOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("invalid request body", err))
	}

	buyerID, err := kernel.UUIDFromString(req.BuyerID)
	if err != nil {
		return writeError(ctx, err)
	}
	partID, err := kernel.UUIDFromString(req.PartID)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, buyerID, partID, req.Quantity,
		req.Address.Line, req.Address.City, req.Address.Region,
		req.BuyerEmail,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrders handles GET /orders?buyer_id=&status=&page=&limit=.
func (s *Server) GetOrders(ctx echo.Context) error {
	buyerID, err := kernel.UUIDFromString(ctx.QueryParam("buyer_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	limit := intQueryParam(ctx, "limit", 20)
	page := intQueryParam(ctx, "page", 1)
	if page < 1 {
		page = 1
	}

	query, err := queries.NewGetOrdersByBuyerQuery(buyerID, ctx.QueryParam("status"), limit, (page-1)*limit)
	if err != nil {
		return writeError(ctx, err)
	}

	responses, err := s.getOrdersBuyer.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"orders": responses,
		"page":   page,
		"limit":  query.Limit(),
	})
}

type transitionOrderRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// TransitionOrder handles PATCH /orders/:id/status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req transitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValidationErrorWithCause("invalid request body", err))
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, req.Status, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.transitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"order_id": orderID.String(),
		"status":   req.Status,
	})
}

func intQueryParam(ctx echo.Context, name string, fallback int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
