// Package probe finds the port the target service is actually listening on.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Sentinel is the exact body the target answers on its root path. A scanned
// candidate only qualifies when its body matches byte for byte.
const Sentinel = "Hello, World!"

// DefaultPrimaryPort is where the proxy is expected to live.
const DefaultPrimaryPort = 8080

// DefaultCandidates are scanned, in order, when the primary is down.
var DefaultCandidates = []int{8080, 8000, 80, 3000, 3001, 8282}

// ErrTargetNotFound means no candidate port had a listening, sentinel-matching
// service. This is fatal to the whole benchmark run.
var ErrTargetNotFound = errors.New("no listening target with matching response found")

const defaultDialTimeout = 500 * time.Millisecond

// Listening reports whether something accepts TCP connections on host:port.
func Listening(host string, port int, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Locator resolves the target port. The primary port wins on a bare listen
// check; candidates from the scan list must also return the sentinel body.
type Locator struct {
	Host        string
	Primary     int
	Candidates  []int
	Sentinel    string
	DialTimeout time.Duration
	Client      *http.Client
}

func NewLocator(host string) *Locator {
	return &Locator{
		Host:        host,
		Primary:     DefaultPrimaryPort,
		Candidates:  DefaultCandidates,
		Sentinel:    Sentinel,
		DialTimeout: defaultDialTimeout,
		Client:      &http.Client{Timeout: 2 * time.Second},
	}
}

// Locate returns the first qualifying port, or ErrTargetNotFound after a
// single pass through the candidate list.
func (l *Locator) Locate(ctx context.Context) (int, error) {
	if Listening(l.Host, l.Primary, l.DialTimeout) {
		return l.Primary, nil
	}

	for _, port := range l.Candidates {
		if !Listening(l.Host, port, l.DialTimeout) {
			continue
		}
		if l.bodyMatches(ctx, port) {
			return port, nil
		}
	}

	return 0, fmt.Errorf("%w (primary %d, candidates %v)", ErrTargetNotFound, l.Primary, l.Candidates)
}

// URL renders the root URL for a resolved port.
func (l *Locator) URL(port int) string {
	return fmt.Sprintf("http://%s/", net.JoinHostPort(l.Host, strconv.Itoa(port)))
}

func (l *Locator) bodyMatches(ctx context.Context, port int) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL(port), nil)
	if err != nil {
		return false
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false
	}

	return string(body) == l.Sentinel
}
