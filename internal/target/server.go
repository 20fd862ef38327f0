// Package target runs a local instance of the system under test: a web
// server answering "Hello, World!" and a reverse proxy in front of it.
package target

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"
)

// Body is what the web server answers on every path.
const Body = "Hello, World!"

// autoPortRange is how many ports past the requested one are tried when
// auto-port fallback is enabled.
const autoPortRange = 1000

type Config struct {
	WebPort   int
	ProxyPort int
	Upstream  string
	AutoPort  bool
}

func DefaultConfig() Config {
	return Config{
		WebPort:   3000,
		ProxyPort: 8080,
		Upstream:  "http://127.0.0.1:3000",
		AutoPort:  true,
	}
}

// Server is a started listener pair: the bound port may differ from the
// requested one when auto-port fallback kicked in.
type Server struct {
	Port int
	srv  *http.Server
}

func (s *Server) Close() error {
	return s.srv.Close()
}

// listen binds the requested port, falling back to the next available one
// within autoPortRange when allowed.
func listen(port int, autoPort bool) (net.Listener, int, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err == nil {
		return ln, port, nil
	}
	if !autoPort {
		return nil, 0, fmt.Errorf("failed to bind port %d: %w", port, err)
	}

	for p := port + 1; p < port+autoPortRange; p++ {
		ln, lerr := net.Listen("tcp", fmt.Sprintf(":%d", p))
		if lerr == nil {
			return ln, p, nil
		}
	}
	return nil, 0, fmt.Errorf("failed to bind port %d and no alternative within %d ports: %w", port, autoPortRange, err)
}

// StartWeb starts the hello-world origin server.
func StartWeb(port int, autoPort bool) (*Server, error) {
	ln, bound, err := listen(port, autoPort)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(Body))
	})

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 2 * time.Second,
	}
	go srv.Serve(ln)

	return &Server{Port: bound, srv: srv}, nil
}

// StartProxy starts the reverse proxy forwarding everything to upstream.
// Upstream failures surface as 502 to the client.
func StartProxy(port int, upstream string, autoPort bool) (*Server, error) {
	u, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL %q: %w", upstream, err)
	}

	ln, bound, err := listen(port, autoPort)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(u)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		http.Error(w, fmt.Sprintf("failed to reach upstream server: %v", err), http.StatusBadGateway)
	}

	srv := &http.Server{
		Handler:           proxy,
		ReadHeaderTimeout: 2 * time.Second,
	}
	go srv.Serve(ln)

	return &Server{Port: bound, srv: srv}, nil
}

// Start brings up both servers. When the web server lands on a fallback
// port, an upstream URL that referenced the requested port is rewritten to
// follow it.
func Start(cfg Config) (web, proxy *Server, err error) {
	web, err = StartWeb(cfg.WebPort, cfg.AutoPort)
	if err != nil {
		return nil, nil, err
	}

	upstream := cfg.Upstream
	if web.Port != cfg.WebPort {
		requested := fmt.Sprintf(":%d", cfg.WebPort)
		if strings.Contains(upstream, requested) {
			upstream = strings.Replace(upstream, requested, fmt.Sprintf(":%d", web.Port), 1)
		}
	}

	proxy, err = StartProxy(cfg.ProxyPort, upstream, cfg.AutoPort)
	if err != nil {
		web.Close()
		return nil, nil, err
	}

	return web, proxy, nil
}
