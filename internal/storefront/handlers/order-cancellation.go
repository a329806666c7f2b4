package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go-storefront/internal/storefront/service"
	"go-storefront/pkg/logging"
	"go.uber.org/zap"
)

type OrderCancellationHandler struct {
	service OrderCancellationService
	logger  *logging.ZapLogger
}

type OrderCancellationService interface {
	CancelOrder(ctx context.Context, userID int, orderID int64) error
}

func NewOrderCancellationHandler(service OrderCancellationService, logger *logging.ZapLogger) *OrderCancellationHandler {
	return &OrderCancellationHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderCancellationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "failed to recover user id from token", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "invalid order id", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = h.service.CancelOrder(r.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			h.logger.DebugCtx(r.Context(), "order not found", zap.Int64("orderID", orderID))
			w.WriteHeader(http.StatusNotFound)
			return
		case errors.Is(err, service.ErrCancellationNotAllowed):
			h.logger.DebugCtx(r.Context(), "cancellation denied by policy", zap.Int64("orderID", orderID))
			writePlainText(w, http.StatusConflict, "order cannot be cancelled")
			return
		default:
			h.logger.ErrorCtx(r.Context(), "order cancellation handler error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}
