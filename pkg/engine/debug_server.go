package engine

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DebugServer serves read-only reconciliation state over HTTP for
// inspection while an application runs. It only ever reads the snapshots
// and stats the engine publishes between cycles, never the live store.
type DebugServer struct {
	server   *http.Server
	listener net.Listener
}

// Handler returns the debug HTTP routes:
//
//	GET /healthz       liveness probe
//	GET /engine/stats  retained cycle stats, oldest first
//	GET /scene/tree    scene snapshot from the latest cycle
func (e *Engine) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})
	r.Get("/engine/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, e.stats.All())
	})
	r.Get("/scene/tree", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, e.TreeSnapshot())
	})
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// StartDebugServer starts serving the engine's debug routes on addr.
// Pass addr ":0" to pick an ephemeral port; the bound address is available
// from Addr.
func StartDebugServer(e *Engine, addr string) (*DebugServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	d := &DebugServer{
		server: &http.Server{
			Handler:           e.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: listener,
	}
	go func() {
		if err := d.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			e.logger.Error("debug server stopped", "err", err)
		}
	}()
	return d, nil
}

// Addr returns the address the server is listening on.
func (d *DebugServer) Addr() string {
	return d.listener.Addr().String()
}

// Shutdown gracefully stops the server.
func (d *DebugServer) Shutdown(ctx context.Context) error {
	return d.server.Shutdown(ctx)
}
