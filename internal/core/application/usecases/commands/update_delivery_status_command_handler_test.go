package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateDeliveryStatusCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	newHandler := func(uow *MockUoW, transitioner *MockOrderTransitioner, notifier *RecordingNotifier) commands.UpdateDeliveryStatusCommandHandler {
		return commands.NewUpdateDeliveryStatusCommandHandler(
			deliveryUoWFactory{uow}, transitioner, testRetryPolicy(t), notifier, testLogger(),
		)
	}

	newCommand := func(t *testing.T, deliveryID kernel.UUID, target string) commands.UpdateDeliveryStatusCommand {
		t.Helper()
		cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, target)
		require.NoError(t, err)
		return cmd
	}

	setup := func(dlv *delivery.Delivery) (*MockUoW, *MockDeliveryRepository, *MockRiderRepository, *MockPaymentRepository) {
		deliveryRepo := &MockDeliveryRepository{}
		deliveryRepo.On("Get", ctx, dlv.ID()).Return(dlv, nil)

		riderRepo := &MockRiderRepository{}
		paymentRepo := &MockPaymentRepository{}

		uow := &MockUoW{}
		uow.On("Begin", ctx).Return(nil)
		uow.On("DeliveryRepository").Return(deliveryRepo)
		uow.On("RiderRepository").Return(riderRepo)
		uow.On("PaymentRepository").Return(paymentRepo)
		uow.On("Rollback", ctx).Return(nil)
		return uow, deliveryRepo, riderRepo, paymentRepo
	}

	t.Run("pickup_moves_order_to_shipped", func(t *testing.T) {
		orderID := kernel.NewUUID()
		dlv := assignedDelivery(t, orderID, kernel.NewUUID())
		uow, deliveryRepo, _, paymentRepo := setup(dlv)
		deliveryRepo.On("Update", ctx, dlv).Return(nil)
		paymentRepo.On("GetLatestByOrder", ctx, orderID).Return(pendingPayment(t, orderID), nil)
		uow.On("Commit", ctx).Return(nil)

		transitioner := &MockOrderTransitioner{}
		transitioner.On("TransitionOrder", mock.Anything, orderID, order.StatusShipped, "package picked up").Return(nil)

		notifier := &RecordingNotifier{}
		handler := newHandler(uow, transitioner, notifier)

		require.NoError(t, handler.Handle(ctx, newCommand(t, dlv.ID(), delivery.StatusPickedUp)))

		assert.Equal(t, delivery.StatusPickedUp, dlv.Status())
		assert.Equal(t, []string{commands.EventDeliveryUpdated}, notifier.Events())
		transitioner.AssertExpectations(t)
	})

	t.Run("delivered_releases_rider_with_credit_and_notifies", func(t *testing.T) {
		orderID := kernel.NewUUID()
		riderID := kernel.NewUUID()
		dlv := assignedDelivery(t, orderID, riderID)
		_, err := dlv.Transition(delivery.StatusPickedUp)
		require.NoError(t, err)
		_, err = dlv.Transition(delivery.StatusInTransit)
		require.NoError(t, err)

		uow, deliveryRepo, riderRepo, paymentRepo := setup(dlv)
		deliveryRepo.On("Update", ctx, dlv).Return(nil)
		riderRepo.On("Release", ctx, riderID, true).Return(nil)
		paymentRepo.On("GetLatestByOrder", ctx, orderID).Return(pendingPayment(t, orderID), nil)
		uow.On("Commit", ctx).Return(nil)

		transitioner := &MockOrderTransitioner{}
		transitioner.On("TransitionOrder", mock.Anything, orderID, order.StatusDelivered, "package delivered").Return(nil)

		notifier := &RecordingNotifier{}
		handler := newHandler(uow, transitioner, notifier)

		require.NoError(t, handler.Handle(ctx, newCommand(t, dlv.ID(), delivery.StatusDelivered)))

		assert.Equal(t, delivery.StatusDelivered, dlv.Status())
		assert.Equal(t, []string{commands.EventDeliveryDelivered}, notifier.Events())
		riderRepo.AssertExpectations(t)
	})

	t.Run("failed_releases_rider_without_credit_and_leaves_order", func(t *testing.T) {
		orderID := kernel.NewUUID()
		riderID := kernel.NewUUID()
		dlv := assignedDelivery(t, orderID, riderID)

		uow, deliveryRepo, riderRepo, paymentRepo := setup(dlv)
		deliveryRepo.On("Update", ctx, dlv).Return(nil)
		riderRepo.On("Release", ctx, riderID, false).Return(nil)
		paymentRepo.On("GetLatestByOrder", ctx, orderID).Return(nil, nil)
		uow.On("Commit", ctx).Return(nil)

		transitioner := &MockOrderTransitioner{}
		handler := newHandler(uow, transitioner, &RecordingNotifier{})

		require.NoError(t, handler.Handle(ctx, newCommand(t, dlv.ID(), delivery.StatusFailed)))

		transitioner.AssertNotCalled(t, "TransitionOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		riderRepo.AssertExpectations(t)
	})

	t.Run("repeat_report_commits_nothing", func(t *testing.T) {
		dlv := assignedDelivery(t, kernel.NewUUID(), kernel.NewUUID())
		uow, deliveryRepo, _, _ := setup(dlv)

		handler := newHandler(uow, &MockOrderTransitioner{}, &RecordingNotifier{})

		require.NoError(t, handler.Handle(ctx, newCommand(t, dlv.ID(), delivery.StatusAssigned)))

		deliveryRepo.AssertNotCalled(t, "Update", ctx, dlv)
		uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("rejects_undeclared_transition", func(t *testing.T) {
		dlv := assignedDelivery(t, kernel.NewUUID(), kernel.NewUUID())
		uow, _, _, _ := setup(dlv)

		handler := newHandler(uow, &MockOrderTransitioner{}, &RecordingNotifier{})

		err := handler.Handle(ctx, newCommand(t, dlv.ID(), delivery.StatusDelivered))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, delivery.StatusAssigned, dlv.Status())
	})
}
