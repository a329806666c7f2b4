package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go-storefront/internal/storefront/cancelpolicy"
	"go-storefront/internal/storefront/data"
)

type Order struct {
	CreatedAt     time.Time
	Status        data.Status
	PaymentMethod data.PaymentMethod
	Total         decimal.Decimal
	ID            int64
	CanCancel     bool
}

type Orders struct {
	transactionManager TransactionManager
	orderRepository    OrderRepository
}

func NewOrders(transactionManager TransactionManager, orderRepository OrderRepository) *Orders {
	return &Orders{
		transactionManager: transactionManager,
		orderRepository:    orderRepository,
	}
}

func (o *Orders) CreateOrder(
	ctx context.Context,
	userID int,
	paymentMethod string,
	total decimal.Decimal,
) (Order, error) {
	method := data.PaymentMethod(strings.ToLower(paymentMethod))
	switch method {
	case data.CashPayment, data.StripePayment:
	default:
		return Order{}, ErrUnknownPaymentMethod
	}

	order := &data.Order{
		UserID:        userID,
		Status:        data.PendingStatus,
		PaymentMethod: method,
		Total:         total,
		CreatedAt:     time.Now(),
	}
	orderID, err := o.orderRepository.InsertOrder(ctx, order)
	if err != nil {
		return Order{}, fmt.Errorf("error inserting order: %w", err)
	}
	order.ID = orderID
	return convert(order), nil
}

func (o *Orders) GetUserOrders(ctx context.Context, userID int) ([]Order, error) {
	orders, err := o.orderRepository.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user orders: %w", err)
	}
	res := make([]Order, len(orders))
	for i := range orders {
		res[i] = convert(&orders[i])
	}
	return res, nil
}

// CancelOrder re-reads the order inside a transaction and re-evaluates
// the cancellation policy against the current row, so a concurrent
// status change cannot slip a cancellation past the policy.
func (o *Orders) CancelOrder(ctx context.Context, userID int, orderID int64) error {
	return o.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		order, err := o.orderRepository.GetOrder(ctx, orderID)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrOrderNotFound):
				return ErrOrderNotFound
			default:
				return fmt.Errorf("error getting order: %w", err)
			}
		}
		if order.UserID != userID {
			// Foreign orders look identical to missing ones.
			return ErrOrderNotFound
		}
		if !cancelpolicy.CanCancel(&order) {
			return ErrCancellationNotAllowed
		}
		if err := o.orderRepository.SetOrderStatus(ctx, orderID, data.CancelledStatus); err != nil {
			return fmt.Errorf("error setting order status: %w", err)
		}
		return nil
	})
}

func convert(order *data.Order) Order {
	return Order{
		ID:            order.ID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Total:         order.Total,
		CreatedAt:     order.CreatedAt,
		CanCancel:     cancelpolicy.CanCancel(order),
	}
}
