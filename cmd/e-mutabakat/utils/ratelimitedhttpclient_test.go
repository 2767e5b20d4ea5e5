package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimitedClientDispatches(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewRateLimitedClient(NewLimiter(100, 1), 0)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	activated := false
	resp, err := client.Do(req, func() { activated = true })
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.True(t, activated)
	assert.Equal(t, 1, hits)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRateLimitedClientHonorsCancelledContext(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	limiter := rate.NewLimiter(rate.Every(1<<62), 1)
	limiter.Allow() // drain the only token
	client := NewRateLimitedClient(limiter, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(req, nil)
	assert.Error(t, err)
	assert.Zero(t, hits)
}

func TestNewLimiterDisablesThrottleForNonPositiveRate(t *testing.T) {
	assert.Equal(t, rate.Inf, NewLimiter(0, 0).Limit())
	assert.Equal(t, 1, NewLimiter(2, 0).Burst())
}
