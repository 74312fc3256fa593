package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/pkg/retry"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRetryPolicy(t *testing.T) retry.Policy {
	t.Helper()
	policy, err := retry.NewPolicy(3, time.Millisecond, 1)
	require.NoError(t, err)
	return policy
}

func money(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, kernel.DefaultCurrency)
	require.NoError(t, err)
	return m
}

func geoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	address, err := order.NewAddress("12 Ring Road", "Accra", "Greater Accra")
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		2, money(t, 45.99), address,
	)
	require.NoError(t, err)
	return o
}

func paidOrder(t *testing.T) *order.Order {
	t.Helper()
	o := pendingOrder(t)
	_, err := o.Transition(order.StatusPaid, "")
	require.NoError(t, err)
	return o
}

func pendingPayment(t *testing.T, orderID kernel.UUID) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), orderID, money(t, 91.98), "buyer@example.com")
	require.NoError(t, err)
	require.NoError(t, p.AttachAuthorization("PSK_ref_1", "https://checkout.paystack.com/a"))
	return p
}

func availableRider(t *testing.T, lat, lon float64) *rider.Rider {
	t.Helper()
	contact, err := kernel.NewContact("Kwame Mensah", "+233201234567", "")
	require.NoError(t, err)
	r, err := rider.NewRider(kernel.NewUUID(), contact, rider.VehicleMotorbike, "GR-1234-24", geoPoint(t, lat, lon))
	require.NoError(t, err)
	return r
}

func assignedDelivery(t *testing.T, orderID, riderID kernel.UUID) *delivery.Delivery {
	t.Helper()
	contact, err := kernel.NewContact("Ama Owusu", "+233209876543", "")
	require.NoError(t, err)
	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, geoPoint(t, 5.6037, -0.1870), geoPoint(t, 5.65, -0.2), contact)
	require.NoError(t, err)
	require.NoError(t, d.AssignRider(riderID))
	return d
}
