// Package status serves a minimal health endpoint for headless runs so
// supervisors can probe liveness without parsing logs.
package status

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"
)

// Version is stamped by the build; "dev" otherwise.
var Version = "dev"

// Server exposes /healthz on a background listener.
type Server struct {
	ln      net.Listener
	httpSrv *http.Server
	start   time.Time

	frames  atomic.Int64
	visible atomic.Int64
}

type health struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	UptimeS float64 `json:"uptime_s"`
	Frames  int64   `json:"frames"`
	Visible int64   `json:"visible"`
}

// Start listens on addr and serves /healthz. Returns an error if the
// address cannot be bound; the serve loop itself runs in the background.
func Start(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &Server{ln: ln, start: time.Now()}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	s.httpSrv = &http.Server{Handler: mux}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("status server stopped", "error", err)
		}
	}()

	slog.Info("status server listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// RecordFrame updates the counters reported by /healthz. Safe to call
// from the frame loop while the server reads them concurrently.
func (s *Server) RecordFrame(visible int) {
	s.frames.Add(1)
	s.visible.Store(int64(visible))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h := health{
		Status:  "ok",
		Version: Version,
		UptimeS: time.Since(s.start).Seconds(),
		Frames:  s.frames.Load(),
		Visible: s.visible.Load(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h); err != nil {
		slog.Warn("writing health response", "error", err)
	}
}

// Close shuts the listener down.
func (s *Server) Close() error {
	return s.httpSrv.Close()
}
