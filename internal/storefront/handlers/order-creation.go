package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go-storefront/internal/storefront/service"
	"go-storefront/pkg/logging"
	"go.uber.org/zap"
)

type OrderCreationHandler struct {
	service OrderCreationService
	logger  *logging.ZapLogger
}

type OrderCreationInput struct {
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
}

type OrderCreationService interface {
	CreateOrder(ctx context.Context, userID int, paymentMethod string, total decimal.Decimal) (service.Order, error)
}

func NewOrderCreationHandler(service OrderCreationService, logger *logging.ZapLogger) *OrderCreationHandler {
	return &OrderCreationHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderCreationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "failed to recover user id from token", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	input, err := decodeJSON[OrderCreationInput](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID, input.PaymentMethod, input.Total)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPaymentMethod):
			h.logger.DebugCtx(r.Context(), "unknown payment method", zap.String("payment_method", input.PaymentMethod))
			w.WriteHeader(http.StatusBadRequest)
			return
		default:
			h.logger.ErrorCtx(r.Context(), "order creation handler error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	item := OrderItem{
		ID:            order.ID,
		Status:        string(order.Status),
		PaymentMethod: string(order.PaymentMethod),
		Total:         order.Total.String(),
		CreatedAt:     order.CreatedAt,
		CanCancel:     order.CanCancel,
	}
	res, err := json.Marshal(item)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error marshalling order", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if _, err := w.Write(res); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
	}
}
