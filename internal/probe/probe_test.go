package probe

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverPort extracts the port an httptest server is bound to.
func serverPort(t *testing.T, srv *httptest.Server) int {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return port
}

// closedPort grabs a free port and releases it again so nothing listens there.
func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func bodyServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestLocator(primary int, candidates ...int) *Locator {
	l := NewLocator("127.0.0.1")
	l.Primary = primary
	l.Candidates = candidates
	l.DialTimeout = 200 * time.Millisecond
	return l
}

func TestListening(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	assert.True(t, Listening("127.0.0.1", port, 200*time.Millisecond))
	assert.False(t, Listening("127.0.0.1", closedPort(t), 200*time.Millisecond))
}

func TestLocatePrimaryWithoutContentCheck(t *testing.T) {
	// A raw TCP listener that never speaks HTTP. The primary must be
	// accepted on the listen check alone.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	l := newTestLocator(port)
	got, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, port, got)
}

func TestLocateSkipsMismatchedCandidate(t *testing.T) {
	wrong := bodyServer(t, "Goodbye")
	right := bodyServer(t, Sentinel)

	l := newTestLocator(closedPort(t),
		closedPort(t),
		serverPort(t, wrong),
		serverPort(t, right),
	)

	got, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, serverPort(t, right), got)
}

func TestLocateCandidateOrder(t *testing.T) {
	first := bodyServer(t, Sentinel)
	second := bodyServer(t, Sentinel)

	l := newTestLocator(closedPort(t), serverPort(t, first), serverPort(t, second))

	got, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, serverPort(t, first), got)
}

func TestLocateNotFound(t *testing.T) {
	l := newTestLocator(closedPort(t), closedPort(t), closedPort(t))

	_, err := l.Locate(context.Background())
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestLocateMismatchOnlyIsNotFound(t *testing.T) {
	wrong := bodyServer(t, "Hello, World! ") // trailing space: must not match

	l := newTestLocator(closedPort(t), serverPort(t, wrong))

	_, err := l.Locate(context.Background())
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestURL(t *testing.T) {
	l := NewLocator("localhost")
	assert.Equal(t, "http://localhost:8282/", l.URL(8282))
}
