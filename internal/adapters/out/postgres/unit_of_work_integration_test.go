package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/deliveryrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/paymentrepo"
	"marketplace/internal/adapters/out/postgres/riderrepo"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based unit of work and all
// four repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&paymentrepo.PaymentDTO{},
		&deliveryrepo.DeliveryDTO{},
		&riderrepo.RiderDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, payments, deliveries, riders").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	unitPrice, err := kernel.NewMoney(45.99, "GHS")
	suite.Require().NoError(err)
	address, err := order.NewAddress("12 Oxford Street", "Accra", "Greater Accra")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		2, unitPrice, address,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newPayment(orderID kernel.UUID) *payment.Payment {
	amount, err := kernel.NewMoney(91.98, "GHS")
	suite.Require().NoError(err)

	p, err := payment.NewPayment(kernel.NewUUID(), orderID, amount, "buyer@example.com")
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) newDelivery(orderID kernel.UUID) *delivery.Delivery {
	pickup, err := kernel.NewGeoPoint(5.6037, -0.1870)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(5.6148, -0.2059)
	suite.Require().NoError(err)
	contact, err := kernel.NewContact("Ama Owusu", "+233209876543", "")
	suite.Require().NoError(err)

	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, pickup, dropoff, contact)
	suite.Require().NoError(err)
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) newRider(lat, lon float64) *rider.Rider {
	contact, err := kernel.NewContact("Kwame Mensah", "+233201234567", "kwame@example.com")
	suite.Require().NoError(err)
	position, err := kernel.NewGeoPoint(lat, lon)
	suite.Require().NoError(err)

	r, err := rider.NewRider(kernel.NewUUID(), contact, rider.VehicleMotorbike, "GR-1234-24", position)
	suite.Require().NoError(err)
	return r
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Repeated begin must not open a nested transaction.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	o := suite.newOrder()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), loaded.ID())
	suite.Equal(order.StatusPending, loaded.Status())
	suite.Equal(o.Amount().Amount(), loaded.Amount().Amount())
	suite.Equal("Accra", loaded.Address().City())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	o := suite.newOrder()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrdersByBuyerPagination() {
	ctx := context.Background()
	buyerID := kernel.NewUUID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	unitPrice, err := kernel.NewMoney(10, "GHS")
	suite.Require().NoError(err)
	address, err := order.NewAddress("12 Oxford Street", "Accra", "Greater Accra")
	suite.Require().NoError(err)
	for range 3 {
		o, orderErr := order.NewOrder(
			kernel.NewUUID(), buyerID, kernel.NewUUID(), kernel.NewUUID(),
			1, unitPrice, address,
		)
		suite.Require().NoError(orderErr)
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	}
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().OrderRepository()
	page, err := repo.GetAllByBuyer(ctx, buyerID, 2, 0)
	suite.Require().NoError(err)
	suite.Len(page, 2)

	rest, err := repo.GetAllByBuyer(ctx, buyerID, 2, 2)
	suite.Require().NoError(err)
	suite.Len(rest, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPaymentProviderRefUnique() {
	ctx := context.Background()
	uow := suite.factory.Create()

	o := suite.newOrder()
	first := suite.newPayment(o.ID())
	suite.Require().NoError(first.AttachAuthorization("PSK_ref_1", "https://checkout.paystack.com/abc"))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, first))
	suite.Require().NoError(uow.Commit(ctx))

	duplicate := suite.newPayment(o.ID())
	suite.Require().NoError(duplicate.AttachAuthorization("PSK_ref_1", "https://checkout.paystack.com/def"))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err := uow.PaymentRepository().Add(ctx, duplicate)
	suite.Require().Error(err)
	var conflict *errs.ConflictError
	suite.ErrorAs(err, &conflict)
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPaymentLookups() {
	ctx := context.Background()
	uow := suite.factory.Create()

	o := suite.newOrder()
	p := suite.newPayment(o.ID())
	suite.Require().NoError(p.AttachAuthorization("PSK_ref_lookups", "https://checkout.paystack.com/abc"))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().PaymentRepository()

	byRef, err := repo.GetByProviderRef(ctx, "PSK_ref_lookups")
	suite.Require().NoError(err)
	suite.Equal(p.ID(), byRef.ID())

	active, err := repo.GetActiveByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(active)
	suite.Equal(p.ID(), active.ID())

	// Settle the payment; it must drop out of the active lookup but stay the
	// latest one for the order.
	paidAt := time.Now().UTC()
	suite.Require().NoError(active.MarkSuccess("card", "Approved", paidAt))
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.PaymentRepository().Update(ctx, active))
	suite.Require().NoError(uow.Commit(ctx))

	active, err = repo.GetActiveByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(active)

	latest, err := repo.GetLatestByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(latest)
	suite.Equal(payment.StatusSuccess, latest.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStaleNonTerminalPayments() {
	ctx := context.Background()
	uow := suite.factory.Create()

	o := suite.newOrder()
	p := suite.newPayment(o.ID())
	suite.Require().NoError(p.AttachAuthorization("PSK_ref_stale", "https://checkout.paystack.com/abc"))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().PaymentRepository()

	stale, err := repo.GetStaleNonTerminal(ctx, time.Now().UTC().Add(-time.Minute))
	suite.Require().NoError(err)
	suite.Empty(stale)

	stale, err = repo.GetStaleNonTerminal(ctx, time.Now().UTC().Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(stale, 1)
	suite.Equal(p.ID(), stale[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryPerOrderUnique() {
	ctx := context.Background()
	uow := suite.factory.Create()

	o := suite.newOrder()
	d := suite.newDelivery(o.ID())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))
	suite.Require().NoError(uow.Commit(ctx))

	duplicate := suite.newDelivery(o.ID())
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err := uow.DeliveryRepository().Add(ctx, duplicate)
	suite.Require().Error(err)
	var conflict *errs.ConflictError
	suite.ErrorAs(err, &conflict)
	suite.Require().NoError(uow.Rollback(ctx))

	loaded, err := suite.factory.Create().DeliveryRepository().GetByTrackingCode(ctx, d.TrackingCode())
	suite.Require().NoError(err)
	suite.Equal(d.ID(), loaded.ID())

	byOrder, err := suite.factory.Create().DeliveryRepository().GetByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(d.ID(), byOrder.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryFilter() {
	ctx := context.Background()
	uow := suite.factory.Create()

	r := suite.newRider(5.6037, -0.1870)
	d := suite.newDelivery(kernel.NewUUID())
	suite.Require().NoError(d.AssignRider(r.ID()))
	other := suite.newDelivery(kernel.NewUUID())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RiderRepository().Add(ctx, r))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, other))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().DeliveryRepository()

	riderID := r.ID()
	assigned, err := repo.GetAll(ctx, ports.DeliveryFilter{Status: delivery.StatusAssigned, RiderID: &riderID}, 10, 0)
	suite.Require().NoError(err)
	suite.Require().Len(assigned, 1)
	suite.Equal(d.ID(), assigned[0].ID())

	pending, err := repo.GetAll(ctx, ports.DeliveryFilter{Status: delivery.StatusPending}, 10, 0)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(other.ID(), pending[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRiderClaimAndRelease() {
	ctx := context.Background()
	uow := suite.factory.Create()

	r := suite.newRider(5.6037, -0.1870)
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RiderRepository().Add(ctx, r))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().RiderRepository()

	claimed, err := repo.TryClaim(ctx, r.ID())
	suite.Require().NoError(err)
	suite.True(claimed)

	// The second claim loses: the rider is already busy.
	claimed, err = repo.TryClaim(ctx, r.ID())
	suite.Require().NoError(err)
	suite.False(claimed)

	suite.Require().NoError(repo.Release(ctx, r.ID(), true))

	loaded, err := repo.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(rider.StatusAvailable, loaded.Status())
	suite.Equal(1, loaded.DeliveriesCompleted())

	// Releasing an already available rider is an error.
	suite.Require().Error(repo.Release(ctx, r.ID(), false))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRiderClaimRace() {
	ctx := context.Background()
	uow := suite.factory.Create()

	r := suite.newRider(5.6037, -0.1870)
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RiderRepository().Add(ctx, r))
	suite.Require().NoError(uow.Commit(ctx))

	// Two claimers race for the same rider; the conditional UPDATE must let
	// exactly one through.
	start := make(chan struct{})
	results := make(chan bool, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo := suite.factory.Create().RiderRepository()
			<-start
			claimed, err := repo.TryClaim(ctx, r.ID())
			suite.Require().NoError(err)
			results <- claimed
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	wins := 0
	for claimed := range results {
		if claimed {
			wins++
		}
	}
	suite.Equal(1, wins, "exactly one claimer must win")

	loaded, err := suite.factory.Create().RiderRepository().Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(rider.StatusBusy, loaded.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNearestAvailableOrdering() {
	ctx := context.Background()
	uow := suite.factory.Create()

	pickup, err := kernel.NewGeoPoint(5.6037, -0.1870)
	suite.Require().NoError(err)

	near := suite.newRider(5.6040, -0.1875)
	far := suite.newRider(5.7000, -0.3000)
	busy := suite.newRider(5.6037, -0.1870)
	suite.Require().NoError(busy.MarkBusy())

	suite.Require().NoError(uow.Begin(ctx))
	for _, r := range []*rider.Rider{near, far, busy} {
		suite.Require().NoError(uow.RiderRepository().Add(ctx, r))
	}
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().RiderRepository()
	riders, err := repo.GetNearestAvailable(ctx, pickup, 5)
	suite.Require().NoError(err)
	suite.Require().Len(riders, 2, "busy rider must not be offered")
	suite.Equal(near.ID(), riders[0].ID())
	suite.Equal(far.ID(), riders[1].ID())

	riders, err = repo.GetNearestAvailable(ctx, pickup, 1)
	suite.Require().NoError(err)
	suite.Require().Len(riders, 1)
	suite.Equal(near.ID(), riders[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	o := suite.newOrder()
	p := suite.newPayment(o.ID())
	suite.Require().NoError(p.AttachAuthorization("PSK_ref_multi", "https://checkout.paystack.com/abc"))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = fresh.PaymentRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
