package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
)

// Run executes the post-startup phase. With an HTTP port configured it
// serves the introspection API until the context is cancelled; otherwise it
// just reports the wiring summary and returns, which makes the default CLI
// invocation a graph check.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Component graph wired.",
		"components", len(a.context.Beans()),
		"categories", a.providers.Categories())

	if a.config.HTTPPort <= 0 {
		a.logger.Debug("Introspection server disabled, run complete.")
		return nil
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.HTTPPort),
		Handler: a.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Introspection server starting.", "address", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("introspection server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// routes builds the introspection router. Every endpoint is a pure consumer
// of the context/registry lookup API.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		a.logger.Debug("Health check endpoint hit.", "remote_addr", req.RemoteAddr)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	r.Get("/components", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, a.context.Beans())
	})

	r.Get("/providers", func(w http.ResponseWriter, req *http.Request) {
		out := make(map[string][]string)
		for _, category := range a.providers.Categories() {
			all := a.providers.All(category)
			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)
			out[category] = names
		}
		writeJSON(w, out)
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
