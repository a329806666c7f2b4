package handlers

import (
	"context"
	"net/http"
	"time"

	"go-storefront/internal/storefront/service"
	"go-storefront/pkg/logging"
	"go.uber.org/zap"
)

type OrderItem struct {
	ID            int64     `json:"id"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	Total         string    `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
	CanCancel     bool      `json:"can_cancel"`
}

type OrderGettingHandler struct {
	service OrderGettingService
	logger  *logging.ZapLogger
}

type OrderGettingService interface {
	GetUserOrders(ctx context.Context, userID int) ([]service.Order, error)
}

func NewOrderGettingHandler(service OrderGettingService, logger *logging.ZapLogger) *OrderGettingHandler {
	return &OrderGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "failed to recover user id from token", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	orders, err := h.service.GetUserOrders(r.Context(), userID)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error getting orders", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	items := make([]OrderItem, len(orders))
	for i, order := range orders {
		items[i] = OrderItem{
			ID:            order.ID,
			Status:        string(order.Status),
			PaymentMethod: string(order.PaymentMethod),
			Total:         order.Total.String(),
			CreatedAt:     order.CreatedAt,
			CanCancel:     order.CanCancel,
		}
	}
	if err := tryWriteResponseJSON(w, items); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
