package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/mcp"
)

const shutdownTimeout = 5 * time.Second

// NewHTTPServer builds the HTTP server for app on addr.
func NewHTTPServer(app *App, addr string) *http.Server {
	handler := httpAdapter.NewHandler(app.Manager,
		httpAdapter.WithLogger(app.Logger),
		httpAdapter.WithGatherer(app.Registry),
		httpAdapter.WithHealthCheck(app.HealthCheck),
	)
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Serve listens on ln until ctx is cancelled, then drains outstanding
// requests for up to five seconds.
func Serve(ctx context.Context, app *App, srv *http.Server, ln net.Listener) error {
	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("HTTP server listening", "address", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		app.Logger.Info("shutdown signal received, stopping HTTP server", "cause", shutdownCause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		app.Logger.Info("HTTP server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP adapter over the given transport ("stdio" or "sse").
func ServeMCP(ctx context.Context, app *App, transport string, port int) error {
	srv := mcp.NewServer(app.Manager, mcp.WithLogger(app.Logger))

	switch transport {
	case "stdio":
		app.Logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		app.Logger.Info("starting MCP server (SSE)", "port", port)
		return srv.ServeSSE(ctx, port)
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}
}
