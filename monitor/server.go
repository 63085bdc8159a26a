package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewRouter exposes the hub:
//
//	GET /ws        websocket feed of every published frame
//	GET /snapshot  the latest frame as plain JSON
//	GET /healthz   liveness with the viewer count
func NewRouter(h *Hub) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.ServeWs).Methods(http.MethodGet)
	r.HandleFunc("/snapshot", func(w http.ResponseWriter, _ *http.Request) {
		frame := h.Latest()
		if frame == nil {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(frame)
	}).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "ok viewers=%d\n", h.Viewers())
	}).Methods(http.MethodGet)
	return r
}

// Serve runs the hub and its HTTP endpoints on addr until ctx is done.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("monitor_listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}
