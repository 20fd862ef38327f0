package bench

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kantarabench/internal/probe"
)

func testConfig(targetURL string) Config {
	cfg := NewConfig()
	cfg.URL = targetURL
	cfg.TotalRequests = 50
	cfg.Connections = 5
	cfg.WarmupRequests = 3
	return cfg
}

func TestRunAttemptsConfiguredVolume(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte("Hello, World!"))
	}))
	defer srv.Close()

	r, err := NewRunner(testConfig(srv.URL), nil)
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 50, res.TotalRequests)
	assert.Equal(t, uint64(50), res.Success+res.Fail)
	assert.Equal(t, uint64(50), r.Stats.Requests)
	// Warm-up hits the server but stays outside the measured count.
	assert.Equal(t, int64(53), atomic.LoadInt64(&hits))
	assert.Greater(t, res.RequestsPerSecond, 0.0)
	assert.Equal(t, srv.URL, res.TargetURL)
}

func TestRunCountsErrorStatusesAsAttempted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.WarmupRequests = 0

	r, err := NewRunner(cfg, nil)
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(0), res.Success)
	assert.Equal(t, uint64(50), res.Fail)
}

func TestRunProceedsWhenWarmupFails(t *testing.T) {
	// The server kills the connection for every warm-up request; the
	// dispatch phase must run unaffected.
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) <= 3 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				conn.Close() // abort warm-up requests mid-flight
			}
			return
		}
		w.Write([]byte("Hello, World!"))
	}))
	defer srv.Close()

	r, err := NewRunner(testConfig(srv.URL), nil)
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, res.TotalRequests)
}

func TestRunResolvesTargetViaLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(probe.Sentinel))
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	cfg := NewConfig()
	cfg.Host = "127.0.0.1"
	cfg.TotalRequests = 10
	cfg.Connections = 2
	cfg.WarmupRequests = 0
	cfg.PrimaryPort = closedPort(t)
	cfg.CandidatePorts = []int{closedPort(t), port}

	r, err := NewRunner(cfg, nil)
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.TargetURL, u.Port())
}

func TestRunTargetNotFound(t *testing.T) {
	cfg := NewConfig()
	cfg.Host = "127.0.0.1"
	cfg.PrimaryPort = closedPort(t)
	cfg.CandidatePorts = []int{closedPort(t)}

	r, err := NewRunner(cfg, nil)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	assert.ErrorIs(t, err, probe.ErrTargetNotFound)
}

func TestNewRunnerRejectsUnknownStrategy(t *testing.T) {
	cfg := testConfig("http://localhost/")
	cfg.Strategy = "forkbomb"

	_, err := NewRunner(cfg, nil)
	assert.Error(t, err)
}

func TestNewRunnerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig("http://localhost/")
	cfg.Connections = 0

	_, err := NewRunner(cfg, nil)
	assert.Error(t, err)
}

func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}
