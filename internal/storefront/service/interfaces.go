package service

import (
	"context"

	"go-storefront/internal/storefront/data"
)

const UserIDClaimName = "user_id"

type UserRepository interface {
	InsertUser(ctx context.Context, login, passwordHash string) (userID int, err error)
	ValidateUser(ctx context.Context, login, passwordHash string) (userID int, err error)
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, order *data.Order) (orderID int64, err error)
	GetOrder(ctx context.Context, orderID int64) (data.Order, error)
	GetUserOrders(ctx context.Context, userID int) ([]data.Order, error)
	SetOrderStatus(ctx context.Context, orderID int64, status data.Status) error
}

type TransactionManager interface {
	DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error
}

type TokenFactory interface {
	Generate(userID int) (string, error)
}
