package errs_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	t.Run("NewValidationError", func(t *testing.T) {
		err := errs.NewValidationError("shipping address is malformed")

		assert.Equal(t, "shipping address is malformed", err.Message)
		require.NoError(t, err.Cause)
		assert.Equal(t, "validation failed: shipping address is malformed", err.Error())
		assert.Equal(t, errs.ErrValidation, err.Unwrap())
	})

	t.Run("NewValidationErrorWithCause", func(t *testing.T) {
		cause := errors.New("city is empty")
		err := errs.NewValidationErrorWithCause("shipping address is malformed", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "validation failed: shipping address is malformed (cause: city is empty)", err.Error())
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("paymentId", "456", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: paymentId, ID is: 456 (cause: database connection failed)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("order", "shipped", "paid")

	assert.Equal(t, "invalid status transition: order cannot move from shipped to paid", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestConflictError(t *testing.T) {
	cause := errors.New("stock is 1, requested 3")
	err := errs.NewConflictErrorWithCause("part is not available in requested quantity", cause)

	assert.Contains(t, err.Error(), "part is not available")
	assert.Contains(t, err.Error(), "cause: stock is 1")
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestNoCapacityError(t *testing.T) {
	err := errs.NewNoCapacityError("no available riders found")

	assert.Equal(t, "no capacity: no available riders found", err.Error())
	require.ErrorIs(t, err, errs.ErrNoCapacity)
}

func TestUpstreamError(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		cause := errors.New("context deadline exceeded")
		err := errs.NewUpstreamTimeoutError("order-service", cause)

		assert.True(t, err.Timeout)
		assert.Equal(t, "upstream call timed out: order-service (cause: context deadline exceeded)", err.Error())
		require.ErrorIs(t, err, errs.ErrUpstreamTimeout)
		require.NotErrorIs(t, err, errs.ErrUpstreamUnavailable)
	})

	t.Run("unavailable", func(t *testing.T) {
		err := errs.NewUpstreamUnavailableError("paystack", nil)

		assert.Equal(t, "upstream unavailable: paystack", err.Error())
		require.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("required unwraps to validation", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("payerContact")

		assert.Equal(t, "value is required: payerContact", err.Error())
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("invalid with cause sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("got\n-1"))

		assert.Contains(t, err.Error(), "got -1")
		assert.NotContains(t, err.Error(), "\n")
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}
