package imageproxy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"go-storefront/pkg/logging"
)

func newTestGateway(t *testing.T, origin string, timeout time.Duration) *Gateway {
	t.Helper()
	logger, err := logging.NewZapLogger(zapcore.ErrorLevel)
	require.NoError(t, err)
	return NewGateway(Config{
		UpstreamOrigin: origin,
		FetchTimeout:   timeout,
	}, logger)
}

func TestDeriveUpstreamOrigin(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		expected string
	}{
		{
			name:     "versioned base URL",
			baseURL:  "https://api.example.com/api/v1",
			expected: "https://api.example.com",
		},
		{
			name:     "versioned base URL with trailing slash",
			baseURL:  "https://api.example.com/api/v1/",
			expected: "https://api.example.com",
		},
		{
			name:     "unversioned base URL",
			baseURL:  "https://api.example.com",
			expected: "https://api.example.com",
		},
		{
			name:     "local backend",
			baseURL:  "http://localhost:8081/api/v1",
			expected: "http://localhost:8081",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, DeriveUpstreamOrigin(test.baseURL))
		})
	}
}

func TestFetchSuccess(t *testing.T) {
	payload := []byte("fake png bytes")
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uploads/products/1.png", r.URL.Path)
		// No explicit Content-Type, so the gateway must infer it.
		w.Header()["Content-Type"] = nil
		_, _ = w.Write(payload)
	}))
	defer upstream.Close()

	gw := newTestGateway(t, upstream.URL, time.Second)
	res, err := gw.Fetch(context.Background(), "uploads/products/1.png", "")
	require.NoError(t, err)
	assert.Equal(t, payload, res.Body)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, "14", res.ContentLength)
}

func TestFetchQueryPassthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v=123&w=640", r.URL.RawQuery)
		w.Header().Set("Content-Type", "image/webp")
		_, _ = w.Write([]byte("ok"))
	}))
	defer upstream.Close()

	gw := newTestGateway(t, upstream.URL, time.Second)
	res, err := gw.Fetch(context.Background(), "/img.webp", "v=123&w=640")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", res.ContentType)
}

func TestFetchUpstreamNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()

	gw := newTestGateway(t, upstream.URL, time.Second)
	_, err := gw.Fetch(context.Background(), "/missing.jpg", "")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
}

func TestFetchUpstreamServerError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	gw := newTestGateway(t, upstream.URL, time.Second)
	_, err := gw.Fetch(context.Background(), "/img.jpg", "")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		upstream.Close()
	}()

	gw := newTestGateway(t, upstream.URL, 50*time.Millisecond)
	_, err := gw.Fetch(context.Background(), "/slow.jpg", "")
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestFetchTransportError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	gw := newTestGateway(t, upstream.URL, time.Second)
	_, err := gw.Fetch(context.Background(), "/img.jpg", "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTimeout))

	var upstreamErr *UpstreamError
	assert.False(t, errors.As(err, &upstreamErr))
}

func TestTypeByExtension(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{path: "/a/b.jpg", expected: "image/jpeg"},
		{path: "/a/b.JPEG", expected: "image/jpeg"},
		{path: "/a/b.png", expected: "image/png"},
		{path: "/a/b.gif", expected: "image/gif"},
		{path: "/a/b.webp", expected: "image/webp"},
		{path: "/a/b.svg", expected: "image/svg+xml"},
		{path: "/a/b.avif", expected: "image/avif"},
		{path: "/a/b.bmp", expected: "image/jpeg"},
		{path: "/a/no-extension", expected: "image/jpeg"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, TypeByExtension(test.path), test.path)
	}
}
