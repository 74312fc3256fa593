package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	setup := func(o *order.Order) (*MockUoW, *MockOrderRepository, *MockPaymentRepository) {
		orderRepo := &MockOrderRepository{}
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil)

		paymentRepo := &MockPaymentRepository{}

		uow := &MockUoW{}
		uow.On("Begin", ctx).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("PaymentRepository").Return(paymentRepo)
		uow.On("Rollback", ctx).Return(nil)
		return uow, orderRepo, paymentRepo
	}

	t.Run("applies_declared_transition_and_notifies_buyer", func(t *testing.T) {
		o := pendingOrder(t)
		uow, orderRepo, paymentRepo := setup(o)
		orderRepo.On("Update", ctx, o).Return(nil)
		paymentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(pendingPayment(t, o.ID()), nil)
		uow.On("Commit", ctx).Return(nil)

		notifier := &RecordingNotifier{}
		handler := commands.NewTransitionOrderCommandHandler(paymentUoWFactory{uow}, notifier)
		cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.StatusPaid, "payment confirmed")
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		assert.Equal(t, order.StatusPaid, o.Status())
		assert.Equal(t, []string{commands.EventOrderUpdated}, notifier.Events())
		uow.AssertExpectations(t)
	})

	t.Run("cancellation_raises_cancelled_event", func(t *testing.T) {
		o := pendingOrder(t)
		uow, orderRepo, paymentRepo := setup(o)
		orderRepo.On("Update", ctx, o).Return(nil)
		paymentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(pendingPayment(t, o.ID()), nil)
		uow.On("Commit", ctx).Return(nil)

		notifier := &RecordingNotifier{}
		handler := commands.NewTransitionOrderCommandHandler(paymentUoWFactory{uow}, notifier)
		cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.StatusCancelled, "buyer changed mind")
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		assert.Equal(t, []string{commands.EventOrderCancelled}, notifier.Events())
	})

	t.Run("skips_notification_without_payment_on_record", func(t *testing.T) {
		o := pendingOrder(t)
		uow, orderRepo, paymentRepo := setup(o)
		orderRepo.On("Update", ctx, o).Return(nil)
		paymentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("payment", o.ID().String()))
		uow.On("Commit", ctx).Return(nil)

		notifier := &RecordingNotifier{}
		handler := commands.NewTransitionOrderCommandHandler(paymentUoWFactory{uow}, notifier)
		cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.StatusCancelled, "")
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		assert.Empty(t, notifier.Events())
	})

	t.Run("repeat_request_commits_nothing", func(t *testing.T) {
		o := paidOrder(t)
		uow, orderRepo, _ := setup(o)

		notifier := &RecordingNotifier{}
		handler := commands.NewTransitionOrderCommandHandler(paymentUoWFactory{uow}, notifier)
		cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.StatusPaid, "")
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		orderRepo.AssertNotCalled(t, "Update", ctx, o)
		uow.AssertNotCalled(t, "Commit", ctx)
		assert.Empty(t, notifier.Events())
	})

	t.Run("rejects_undeclared_transition", func(t *testing.T) {
		o := pendingOrder(t)
		uow, _, _ := setup(o)

		handler := commands.NewTransitionOrderCommandHandler(paymentUoWFactory{uow}, &RecordingNotifier{})
		cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.StatusShipped, "")
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("rejects_unknown_target_up_front", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(pendingOrder(t).ID(), "on_hold", "")

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}
