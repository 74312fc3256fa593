// Package http exposes the checkout backbone over REST. Handlers translate
// between the wire format and the application's commands and queries; all
// business rules live below this layer.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to command and query handlers.
type Server struct {
	// Command handlers.
	createOrder          commands.CreateOrderCommandHandler
	transitionOrder      commands.TransitionOrderCommandHandler
	initiatePayment      commands.InitiatePaymentCommandHandler
	confirmPayment       commands.ConfirmPaymentCommandHandler
	assignDelivery       commands.AssignDeliveryCommandHandler
	updateDeliveryStatus commands.UpdateDeliveryStatusCommandHandler
	registerRider        commands.RegisterRiderCommandHandler
	updateRiderLocation  commands.UpdateRiderLocationCommandHandler
	sendNotification     commands.SendNotificationCommandHandler

	// Query handlers.
	getOrder          queries.GetOrderQueryHandler
	getOrdersBuyer    queries.GetOrdersByBuyerQueryHandler
	getPayment        queries.GetPaymentQueryHandler
	getPaymentByOrder queries.GetPaymentByOrderQueryHandler
	getDelivery       queries.GetDeliveryQueryHandler
	getDeliveries     queries.GetDeliveriesQueryHandler
	trackDelivery     queries.TrackDeliveryQueryHandler
}

// ServerDeps carries everything the server needs, grouped so the composition
// root stays readable.
type ServerDeps struct {
	CreateOrder          commands.CreateOrderCommandHandler
	TransitionOrder      commands.TransitionOrderCommandHandler
	InitiatePayment      commands.InitiatePaymentCommandHandler
	ConfirmPayment       commands.ConfirmPaymentCommandHandler
	AssignDelivery       commands.AssignDeliveryCommandHandler
	UpdateDeliveryStatus commands.UpdateDeliveryStatusCommandHandler
	RegisterRider        commands.RegisterRiderCommandHandler
	UpdateRiderLocation  commands.UpdateRiderLocationCommandHandler
	SendNotification     commands.SendNotificationCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	GetOrdersBuyer    queries.GetOrdersByBuyerQueryHandler
	GetPayment        queries.GetPaymentQueryHandler
	GetPaymentByOrder queries.GetPaymentByOrderQueryHandler
	GetDelivery       queries.GetDeliveryQueryHandler
	GetDeliveries     queries.GetDeliveriesQueryHandler
	TrackDelivery     queries.TrackDeliveryQueryHandler
}

// NewServer creates the HTTP server over the application layer.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		createOrder:          deps.CreateOrder,
		transitionOrder:      deps.TransitionOrder,
		initiatePayment:      deps.InitiatePayment,
		confirmPayment:       deps.ConfirmPayment,
		assignDelivery:       deps.AssignDelivery,
		updateDeliveryStatus: deps.UpdateDeliveryStatus,
		registerRider:        deps.RegisterRider,
		updateRiderLocation:  deps.UpdateRiderLocation,
		sendNotification:     deps.SendNotification,
		getOrder:             deps.GetOrder,
		getOrdersBuyer:       deps.GetOrdersBuyer,
		getPayment:           deps.GetPayment,
		getPaymentByOrder:    deps.GetPaymentByOrder,
		getDelivery:          deps.GetDelivery,
		getDeliveries:        deps.GetDeliveries,
		trackDelivery:        deps.TrackDelivery,
	}
}

// RegisterRoutes mounts all routes on the echo instance. The health endpoint,
// the payment webhook, and the public tracking endpoint bypass bearer auth.
func (s *Server) RegisterRoutes(e *echo.Echo, authToken string) {
	e.Use(CorrelationMiddleware())

	e.GET("/health", s.Health)
	e.POST("/payments/webhook", s.HandlePaymentWebhook)
	e.GET("/track/:code", s.TrackDelivery)

	guarded := e.Group("", BearerAuthMiddleware(authToken))

	guarded.POST("/orders", s.CreateOrder)
	guarded.GET("/orders", s.GetOrders)
	guarded.GET("/orders/:id", s.GetOrder)
	guarded.PATCH("/orders/:id/status", s.TransitionOrder)
	guarded.GET("/orders/:id/payment", s.GetPaymentByOrder)

	guarded.POST("/payments/initiate", s.InitiatePayment)
	guarded.GET("/payments/:id", s.GetPayment)

	guarded.POST("/deliveries/assign", s.AssignDelivery)
	guarded.GET("/deliveries", s.GetDeliveries)
	guarded.GET("/deliveries/:id", s.GetDelivery)
	guarded.PATCH("/deliveries/:id/status", s.UpdateDeliveryStatus)

	guarded.POST("/riders", s.RegisterRider)
	guarded.PATCH("/riders/:id/location", s.UpdateRiderLocation)

	guarded.POST("/notify", s.SendNotification)
}

// Health reports liveness.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
