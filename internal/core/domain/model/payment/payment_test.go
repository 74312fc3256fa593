package payment_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T) *payment.Payment {
	t.Helper()

	amount, err := kernel.NewMoney(91.98, kernel.DefaultCurrency)
	require.NoError(t, err)

	p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), amount, "buyer@example.com")
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("starts_pending_on_paystack", func(t *testing.T) {
		p := newTestPayment(t)

		assert.Equal(t, payment.StatusPending, p.Status())
		assert.Equal(t, payment.ProviderPaystack, p.Provider())
		assert.False(t, p.IsTerminal())
		assert.Empty(t, p.ProviderRef())
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		zero, err := kernel.NewMoney(0, kernel.DefaultCurrency)
		require.NoError(t, err)

		_, err = payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), zero, "buyer@example.com")

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects_missing_payer_email", func(t *testing.T) {
		amount, _ := kernel.NewMoney(10, kernel.DefaultCurrency)

		_, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), amount, "")

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p payment.Payment

		require.ErrorIs(t, p.Validate(), payment.ErrPaymentIsNotConstructed)
	})
}

func TestPayment_AttachAuthorization(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.AttachAuthorization("PSK_ref_123", "https://checkout.paystack.com/abc"))
	assert.Equal(t, "PSK_ref_123", p.ProviderRef())
	assert.Equal(t, "https://checkout.paystack.com/abc", p.AuthorizationURL())

	require.ErrorIs(t, p.AttachAuthorization("", "https://x"), errs.ErrValidation)
}

func TestPayment_Outcomes(t *testing.T) {
	t.Run("success_records_settlement_details", func(t *testing.T) {
		p := newTestPayment(t)
		paidAt := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)

		require.NoError(t, p.MarkSuccess("mobile_money", "Approved", paidAt))

		assert.Equal(t, payment.StatusSuccess, p.Status())
		assert.Equal(t, "mobile_money", p.Channel())
		require.NotNil(t, p.PaidAt())
		assert.Equal(t, paidAt, *p.PaidAt())
		assert.True(t, p.IsTerminal())
	})

	t.Run("failure_records_error_message", func(t *testing.T) {
		p := newTestPayment(t)

		require.NoError(t, p.MarkFailed("insufficient funds"))

		assert.Equal(t, payment.StatusFailed, p.Status())
		assert.Equal(t, "insufficient funds", p.ErrorMessage())
		assert.True(t, p.IsTerminal())
	})

	t.Run("terminal_payment_rejects_further_outcomes", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.MarkSuccess("card", "Approved", time.Now()))

		err := p.MarkFailed("late decline")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, payment.StatusSuccess, p.Status())

		require.ErrorIs(t, p.MarkProcessing(), errs.ErrInvalidTransition)
	})

	t.Run("processing_is_not_terminal", func(t *testing.T) {
		p := newTestPayment(t)

		require.NoError(t, p.MarkProcessing())

		assert.False(t, p.IsTerminal())
		require.NoError(t, p.MarkSuccess("card", "Approved", time.Now()))
	})
}

func TestRestorePayment(t *testing.T) {
	t.Run("rejects_unknown_status", func(t *testing.T) {
		amount, _ := kernel.NewMoney(10, kernel.DefaultCurrency)

		_, err := payment.RestorePayment(
			kernel.NewUUID(), kernel.NewUUID(), amount, "settled",
			payment.ProviderPaystack, "buyer@example.com",
			"", "", "", "", "", nil, time.Now(), time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("round_trips_terminal_state", func(t *testing.T) {
		amount, _ := kernel.NewMoney(10, kernel.DefaultCurrency)
		paidAt := time.Now().UTC()

		p, err := payment.RestorePayment(
			kernel.NewUUID(), kernel.NewUUID(), amount, payment.StatusSuccess,
			payment.ProviderPaystack, "buyer@example.com",
			"PSK_ref_123", "https://checkout.paystack.com/abc", "card", "Approved", "",
			&paidAt, time.Now(), time.Now(),
		)

		require.NoError(t, err)
		assert.True(t, p.IsTerminal())
		assert.Equal(t, "PSK_ref_123", p.ProviderRef())
	})
}
