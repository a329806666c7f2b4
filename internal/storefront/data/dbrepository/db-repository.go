package dbrepository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go-storefront/internal/storefront/data"
	"go-storefront/pkg/logging"
)

const (
	invalidUserID  = -1
	invalidOrderID = -1

	uniqueViolationCode = "23505"
)

type DBStorage interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) (pgx.Row, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryValue(ctx context.Context, query string, args []any, dest []any) error
}

type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/insert_user.sql
var insertUserQuery string

func (db *DBRepository) InsertUser(ctx context.Context, login, passwordHash string) (userID int, err error) {
	err = db.storage.QueryValue(ctx, insertUserQuery, []any{login, passwordHash}, []any{&userID})
	if err != nil {
		return invalidUserID, handleSQLError(err)
	}
	return userID, nil
}

//go:embed sql/validate_user.sql
var validateUserQuery string

func (db *DBRepository) ValidateUser(ctx context.Context, login, passwordHash string) (userID int, err error) {
	result := struct {
		userID          int
		passwordMatches bool
	}{}
	err = db.storage.QueryValue(
		ctx,
		validateUserQuery,
		[]any{login, passwordHash},
		[]any{&result.userID, &result.passwordMatches},
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return invalidUserID, data.ErrInvalidLogin
		default:
			return invalidUserID, fmt.Errorf("failed to validate user: %w", err)
		}
	}
	if !result.passwordMatches {
		return invalidUserID, data.ErrInvalidPassword
	}
	return result.userID, nil
}

//go:embed sql/insert_order.sql
var insertOrderQuery string

func (db *DBRepository) InsertOrder(ctx context.Context, order *data.Order) (orderID int64, err error) {
	err = db.storage.QueryValue(
		ctx,
		insertOrderQuery,
		[]any{
			order.UserID,
			string(order.Status),
			string(order.PaymentMethod),
			order.Total,
			order.CreatedAt,
		},
		[]any{&orderID},
	)
	if err != nil {
		return invalidOrderID, handleSQLError(err)
	}
	return orderID, nil
}

//go:embed sql/select_order.sql
var selectOrderQuery string

func (db *DBRepository) GetOrder(ctx context.Context, orderID int64) (data.Order, error) {
	order := data.Order{
		ID: orderID,
	}
	err := db.storage.QueryValue(
		ctx,
		selectOrderQuery,
		[]any{orderID},
		[]any{
			&order.UserID,
			&order.Status,
			&order.PaymentMethod,
			&order.Total,
			&order.CreatedAt,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return data.Order{}, data.ErrOrderNotFound
		default:
			return data.Order{}, handleSQLError(err)
		}
	}
	return order, nil
}

//go:embed sql/select_user_orders.sql
var selectUserOrdersQuery string

func (db *DBRepository) GetUserOrders(ctx context.Context, userID int) ([]data.Order, error) {
	rows, err := db.storage.Query(ctx, selectUserOrdersQuery, userID)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Order, 0)
	for rows.Next() {
		order := data.Order{
			UserID: userID,
		}
		err := rows.Scan(
			&order.ID,
			&order.Status,
			&order.PaymentMethod,
			&order.Total,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

//go:embed sql/update_order_status.sql
var updateOrderStatusQuery string

func (db *DBRepository) SetOrderStatus(ctx context.Context, orderID int64, status data.Status) error {
	tag, err := db.storage.Exec(ctx, updateOrderStatusQuery, string(status), orderID)
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		return data.ErrOrderNotFound
	}
	return nil
}

func handleSQLError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return data.ErrUniqueConstraintViolation
	}
	return fmt.Errorf("sql error: %w", err)
}
