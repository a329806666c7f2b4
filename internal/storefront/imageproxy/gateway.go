// Package imageproxy fetches catalog images from the backend content
// server on behalf of the storefront, so that image URLs never expose
// the backend host directly.
package imageproxy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go-storefront/pkg/logging"
	"go.uber.org/zap"
)

const (
	apiVersionSuffix = "/api/v1"

	DefaultFetchTimeout = 10 * time.Second
	CacheMaxAgeSeconds  = 31536000
)

var (
	ErrInvalidSource = errors.New("target resolves outside the upstream origin")
	ErrTimeout       = errors.New("upstream fetch timed out")
)

// UpstreamError is returned when the upstream answered with a non-2xx
// status. StatusCode is never zero.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

type Config struct {
	UpstreamOrigin string
	FetchTimeout   time.Duration
}

// Resource is a fully buffered upstream payload with the headers the
// storefront serves it under.
type Resource struct {
	Body          []byte
	ContentType   string
	ContentLength string
}

type Gateway struct {
	client *resty.Client
	logger *logging.ZapLogger
	cfg    Config
}

// DeriveUpstreamOrigin strips the versioned API path from the
// configured backend base URL, leaving scheme+host. Resolved once at
// startup; request handling never reads configuration.
func DeriveUpstreamOrigin(apiBaseURL string) string {
	origin := strings.TrimSuffix(apiBaseURL, "/")
	origin = strings.TrimSuffix(origin, apiVersionSuffix)
	return strings.TrimSuffix(origin, "/")
}

func NewGateway(cfg Config, logger *logging.ZapLogger) *Gateway {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	return &Gateway{
		cfg:    cfg,
		client: resty.New(),
		logger: logger,
	}
}

// Fetch retrieves imagePath from the upstream origin, passing rawQuery
// through verbatim. The whole body is buffered; image payloads are
// bounded in practice.
func (g *Gateway) Fetch(ctx context.Context, imagePath string, rawQuery string) (Resource, error) {
	if !strings.HasPrefix(imagePath, "/") {
		imagePath = "/" + imagePath
	}

	targetURL := g.cfg.UpstreamOrigin + imagePath
	if !strings.HasPrefix(targetURL, g.cfg.UpstreamOrigin) {
		return Resource{}, ErrInvalidSource
	}
	if rawQuery != "" {
		targetURL += "?" + rawQuery
	}

	fetchCtx, cancel := context.WithTimeout(ctx, g.cfg.FetchTimeout)
	defer cancel()

	resp, err := g.client.R().
		SetContext(fetchCtx).
		Get(targetURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Resource{}, ErrTimeout
		}
		return Resource{}, fmt.Errorf("get request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode < 200 || statusCode > 299 {
		if statusCode == 0 {
			statusCode = 500
		}
		g.logger.DebugCtx(ctx, "upstream image fetch failed",
			zap.String("path", imagePath),
			zap.Int("status", statusCode),
		)
		return Resource{}, &UpstreamError{StatusCode: statusCode}
	}

	body := resp.Body()

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = TypeByExtension(imagePath)
	}

	contentLength := resp.Header().Get("Content-Length")
	if contentLength == "" {
		contentLength = strconv.Itoa(len(body))
	}

	return Resource{
		Body:          body,
		ContentType:   contentType,
		ContentLength: contentLength,
	}, nil
}
