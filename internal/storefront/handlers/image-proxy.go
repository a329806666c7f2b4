package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go-storefront/internal/storefront/imageproxy"
	"go-storefront/pkg/logging"
	"go.uber.org/zap"
)

const preflightMaxAgeSeconds = 86400

type ImageProxyHandler struct {
	fetcher ImageFetcher
	logger  *logging.ZapLogger
}

type ImageFetcher interface {
	Fetch(ctx context.Context, imagePath string, rawQuery string) (imageproxy.Resource, error)
}

func NewImageProxyHandler(fetcher ImageFetcher, logger *logging.ZapLogger) *ImageProxyHandler {
	return &ImageProxyHandler{
		fetcher: fetcher,
		logger:  logger,
	}
}

func (h *ImageProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	imagePath := chi.URLParam(r, "*")
	if strings.TrimSpace(imagePath) == "" {
		writePlainText(w, http.StatusBadRequest, "Image path is required")
		return
	}

	resource, err := h.fetcher.Fetch(r.Context(), imagePath, r.URL.RawQuery)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", resource.ContentType)
	w.Header().Set("Content-Length", resource.ContentLength)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, immutable", imageproxy.CacheMaxAgeSeconds))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resource.Body); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing image response", zap.Error(err))
	}
}

func (h *ImageProxyHandler) writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	var upstreamErr *imageproxy.UpstreamError
	switch {
	case errors.Is(err, imageproxy.ErrInvalidSource):
		writePlainText(w, http.StatusForbidden, "Invalid image source")
	case errors.Is(err, imageproxy.ErrTimeout):
		writePlainText(w, http.StatusGatewayTimeout, "Request timeout")
	case errors.As(err, &upstreamErr):
		if upstreamErr.StatusCode == http.StatusNotFound {
			writePlainText(w, http.StatusNotFound, "Image not found")
			return
		}
		writePlainText(w, upstreamErr.StatusCode, fmt.Sprintf("Failed to fetch image: %d", upstreamErr.StatusCode))
	default:
		h.logger.ErrorCtx(r.Context(), "image fetch failed", zap.Error(err))
		writePlainText(w, http.StatusInternalServerError, "Failed to fetch image")
	}
}

// ServeOptions answers CORS preflight for the image routes.
func (h *ImageProxyHandler) ServeOptions(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Access-Control-Max-Age", strconv.Itoa(preflightMaxAgeSeconds))
	w.WriteHeader(http.StatusOK)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
