package cmd

import (
	"log/slog"
	"time"

	"marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/catalog"
	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/adapters/out/ordersvc"
	"marketplace/internal/adapters/out/paystack"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/retry"

	"gorm.io/gorm"
)

// Transition retry tuning for saga steps that cross an aggregate boundary.
const (
	retryAttempts   = 3
	retryBaseDelay  = 200 * time.Millisecond
	retryMultiplier = 2.0
)

// CompositionRoot wires adapters to the application layer. Shared adapters
// are built once; handlers are built per request for fresh unit of work state.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	gateway          ports.PaymentGateway
	catalog          ports.PartCatalog
	transitioner     ports.OrderTransitioner
	sendNotification commands.SendNotificationCommandHandler
	dispatcher       *notify.Dispatcher
	retryPolicy      retry.Policy
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	retryPolicy, err := retry.NewPolicy(retryAttempts, retryBaseDelay, retryMultiplier)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:      logger,
		gateway:     paystack.NewClient(config.PaystackSecretKey, logger),
		retryPolicy: retryPolicy,
	}

	if config.CatalogURL != "" {
		root.catalog = catalog.NewHTTPClient(config.CatalogURL)
	} else {
		root.catalog = catalog.NewPostgresCatalog(gormDB)
	}

	senders := []ports.ChannelSender{
		notify.NewEmailSender(notify.EmailConfig{
			Host:     config.SMTPHost,
			Port:     config.SMTPPort,
			Username: config.SMTPUsername,
			Password: config.SMTPPassword,
			From:     config.SMTPFrom,
		}, logger),
		notify.NewTelegramSender(config.TelegramBotToken, logger),
		notify.NewWhatsAppSender(notify.WhatsAppConfig{
			AccountSID: config.TwilioAccountSID,
			AuthToken:  config.TwilioAuthToken,
			FromNumber: config.TwilioFromNumber,
		}, logger),
	}
	root.sendNotification = commands.NewSendNotificationCommandHandler(senders, logger)
	root.dispatcher = notify.NewDispatcher(root.sendNotification, logger)

	// The local transitioner notifies through the dispatcher, so it must be
	// wired after it.
	if config.OrderServiceURL != "" {
		root.transitioner = ordersvc.NewHTTPTransitioner(config.OrderServiceURL, config.AuthToken)
	} else {
		root.transitioner = ordersvc.NewLocalTransitioner(root.CreateTransitionOrderCommandHandler())
	}

	return root, nil
}

// Dispatcher exposes the notification dispatcher so shutdown can drain it.
func (c *CompositionRoot) Dispatcher() *notify.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.catalog, c.dispatcher)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.paymentUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	return commands.NewInitiatePaymentCommandHandler(c.paymentUoWFactory(), c.gateway)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(
		c.paymentUoWFactory(), c.gateway, c.transitioner, c.retryPolicy, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(
		c.deliveryUoWFactory(), c.catalog, c.transitioner, c.retryPolicy, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(
		c.deliveryUoWFactory(), c.transitioner, c.retryPolicy, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	return commands.NewRegisterRiderCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateRiderLocationCommandHandler() commands.UpdateRiderLocationCommandHandler {
	return commands.NewUpdateRiderLocationCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.paymentUoWFactory(), c.CreateConfirmPaymentCommandHandler(), c.transitioner, c.logger)
}

// CreateServerDeps assembles every handler the HTTP server mounts.
func (c *CompositionRoot) CreateServerDeps() http.ServerDeps {
	return http.ServerDeps{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		TransitionOrder:      c.CreateTransitionOrderCommandHandler(),
		InitiatePayment:      c.CreateInitiatePaymentCommandHandler(),
		ConfirmPayment:       c.CreateConfirmPaymentCommandHandler(),
		AssignDelivery:       c.CreateAssignDeliveryCommandHandler(),
		UpdateDeliveryStatus: c.CreateUpdateDeliveryStatusCommandHandler(),
		RegisterRider:        c.CreateRegisterRiderCommandHandler(),
		UpdateRiderLocation:  c.CreateUpdateRiderLocationCommandHandler(),
		SendNotification:     c.sendNotification,

		GetOrder:          queries.NewGetOrderQueryHandler(c.gormDB),
		GetOrdersBuyer:    queries.NewGetOrdersByBuyerQueryHandler(c.gormDB),
		GetPayment:        queries.NewGetPaymentQueryHandler(c.gormDB),
		GetPaymentByOrder: queries.NewGetPaymentByOrderQueryHandler(c.gormDB),
		GetDelivery:       queries.NewGetDeliveryQueryHandler(c.gormDB),
		GetDeliveries:     queries.NewGetDeliveriesQueryHandler(c.gormDB),
		TrackDelivery:     queries.NewTrackDeliveryQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}
