package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/internal/storefront/data"
)

type fakeOrderRepository struct {
	orders map[int64]data.Order
	nextID int64
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{
		orders: make(map[int64]data.Order),
		nextID: 1,
	}
}

func (r *fakeOrderRepository) InsertOrder(_ context.Context, order *data.Order) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *order
	stored.ID = id
	r.orders[id] = stored
	return id, nil
}

func (r *fakeOrderRepository) GetOrder(_ context.Context, orderID int64) (data.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return data.Order{}, data.ErrOrderNotFound
	}
	return order, nil
}

func (r *fakeOrderRepository) GetUserOrders(_ context.Context, userID int) ([]data.Order, error) {
	result := make([]data.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepository) SetOrderStatus(_ context.Context, orderID int64, status data.Status) error {
	order, ok := r.orders[orderID]
	if !ok {
		return data.ErrOrderNotFound
	}
	order.Status = status
	r.orders[orderID] = order
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	return f(ctx)
}

func newTestOrders() (*Orders, *fakeOrderRepository) {
	repo := newFakeOrderRepository()
	return NewOrders(passthroughTxManager{}, repo), repo
}

func seedOrder(repo *fakeOrderRepository, userID int, status data.Status, method data.PaymentMethod) int64 {
	id := repo.nextID
	repo.nextID++
	repo.orders[id] = data.Order{
		ID:            id,
		UserID:        userID,
		Status:        status,
		PaymentMethod: method,
		Total:         decimal.NewFromInt(100),
		CreatedAt:     time.Now(),
	}
	return id
}

func TestCreateOrder(t *testing.T) {
	service, repo := newTestOrders()

	order, err := service.CreateOrder(context.Background(), 7, "Cash", decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.Equal(t, data.PendingStatus, order.Status)
	assert.Equal(t, data.CashPayment, order.PaymentMethod)
	assert.True(t, order.CanCancel)

	stored := repo.orders[order.ID]
	assert.Equal(t, 7, stored.UserID)
	assert.Equal(t, data.PendingStatus, stored.Status)
}

func TestCreateOrderStripeNotCancellable(t *testing.T) {
	service, _ := newTestOrders()

	order, err := service.CreateOrder(context.Background(), 7, "stripe", decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.Equal(t, data.PendingStatus, order.Status)
	assert.False(t, order.CanCancel)
}

func TestCreateOrderUnknownPaymentMethod(t *testing.T) {
	service, _ := newTestOrders()

	_, err := service.CreateOrder(context.Background(), 7, "paypal", decimal.NewFromInt(250))
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
}

func TestGetUserOrdersComputesCanCancel(t *testing.T) {
	service, repo := newTestOrders()
	cancellable := seedOrder(repo, 1, data.PendingStatus, data.CashPayment)
	notCancellable := seedOrder(repo, 1, data.DeliveredStatus, data.CashPayment)
	seedOrder(repo, 2, data.PendingStatus, data.CashPayment) // other user

	orders, err := service.GetUserOrders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	verdicts := make(map[int64]bool, len(orders))
	for _, order := range orders {
		verdicts[order.ID] = order.CanCancel
	}
	assert.True(t, verdicts[cancellable])
	assert.False(t, verdicts[notCancellable])
}

func TestCancelOrder(t *testing.T) {
	tests := []struct {
		name        string
		status      data.Status
		method      data.PaymentMethod
		expectedErr error
	}{
		{
			name:   "pending cash",
			status: data.PendingStatus,
			method: data.CashPayment,
		},
		{
			name:   "processing cash",
			status: data.ProcessingStatus,
			method: data.CashPayment,
		},
		{
			name:        "confirmed cash",
			status:      data.ConfirmedStatus,
			method:      data.CashPayment,
			expectedErr: ErrCancellationNotAllowed,
		},
		{
			name:        "pending stripe",
			status:      data.PendingStatus,
			method:      data.StripePayment,
			expectedErr: ErrCancellationNotAllowed,
		},
		{
			name:        "already cancelled",
			status:      data.CancelledStatus,
			method:      data.CashPayment,
			expectedErr: ErrCancellationNotAllowed,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, repo := newTestOrders()
			orderID := seedOrder(repo, 1, test.status, test.method)

			err := service.CancelOrder(context.Background(), 1, orderID)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				assert.Equal(t, test.status, repo.orders[orderID].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, data.CancelledStatus, repo.orders[orderID].Status)
		})
	}
}

func TestCancelOrderNotFound(t *testing.T) {
	service, _ := newTestOrders()
	err := service.CancelOrder(context.Background(), 1, 12345)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancelOrderForeignOrder(t *testing.T) {
	service, repo := newTestOrders()
	orderID := seedOrder(repo, 2, data.PendingStatus, data.CashPayment)

	err := service.CancelOrder(context.Background(), 1, orderID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Equal(t, data.PendingStatus, repo.orders[orderID].Status)
}

func TestCancelOrderIsIdempotentDenial(t *testing.T) {
	service, repo := newTestOrders()
	orderID := seedOrder(repo, 1, data.PendingStatus, data.CashPayment)

	require.NoError(t, service.CancelOrder(context.Background(), 1, orderID))
	err := service.CancelOrder(context.Background(), 1, orderID)
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)
}
