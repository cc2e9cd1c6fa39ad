package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"gridroute/pathfinding"
	"gridroute/scene"
)

// Config configures the HTTP server.
type Config struct {
	Addr   string
	Logger *log.Logger
	// CacheSize bounds the shared path cache. Zero or less is unbounded.
	CacheSize int
	Options   []pathfinding.Option
}

// NewHTTPHandler returns the server routes:
//
//	/ws      route requests over a WebSocket
//	/schema  JSON schema of scene files
//	/stats   path cache statistics
//	/health  liveness probe
func NewHTTPHandler(router *pathfinding.CachedRouter, cfg HandlerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	cfg.Logger = logger

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		hits, misses, evictions, size := router.Cache().Stats()
		writeJSON(w, logger, statsMessage{
			Status: "ok",
			Hits:   hits,
			Misses: misses,
			Evicts: evictions,
			Size:   size,
		})
	})

	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		data, err := scene.SchemaJSON()
		if err != nil {
			logger.Printf("failed to build schema: %v", err)
			http.Error(w, "schema unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/schema+json")
		w.Write(data)
	})

	mux.HandleFunc("/ws", NewHandler(router, cfg).Handle)

	return mux
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Printf("failed to marshal response: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	router := pathfinding.NewCachedRouter(cfg.CacheSize)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHTTPHandler(router, HandlerConfig{Logger: logger, Options: cfg.Options}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve %s: %w", cfg.Addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
