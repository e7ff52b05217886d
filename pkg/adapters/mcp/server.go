package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ResourceScheme prefixes the URI of every automaton resource.
const ResourceScheme = "automata://"

// ProcessArgs are the arguments of the process_string tool.
type ProcessArgs struct {
	Automaton string `json:"automaton"`
	Input     string `json:"input"`
}

// AutomatonArgs identify an automaton.
type AutomatonArgs struct {
	Automaton string `json:"automaton"`
}

// GraphArgs are the arguments of the render_graph tool.
type GraphArgs struct {
	Automaton string `json:"automaton"`
	Trace     string `json:"trace,omitempty"`
}

// ProcessResponse is the structured result of process_string.
type ProcessResponse struct {
	ID       string            `json:"id" jsonschema_description:"History identifier of the run"`
	Accepted bool              `json:"accepted" jsonschema_description:"Whether the input was accepted"`
	Halt     domain.HaltReason `json:"halt" jsonschema_description:"Why the run stopped: completed, unknown_symbol or no_transition"`
	Trace    []string          `json:"trace" jsonschema_description:"Execution trace, one line per step"`
}

// Server exposes hosted automata as an MCP Server.
type Server struct {
	manager   *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance. A resource is registered for
// every automaton the manager hosts at this point.
func NewServer(mgr *session.Manager, opts ...Option) *Server {
	s := &Server{
		manager:   mgr,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	for _, name := range mgr.Names() {
		s.registerResource(name)
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: process_string
	processTool := mcp.NewTool("process_string",
		mcp.WithDescription("Run an input string through a hosted automaton and return the verdict with its execution trace."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Name of the hosted automaton")),
		mcp.WithString("input", mcp.Required(), mcp.Description("String to process, one symbol per character")),
		mcp.WithOutputSchema[ProcessResponse](),
	)
	s.mcpServer.AddTool(processTool, mcp.NewStructuredToolHandler(s.handleProcess))

	// TOOL: describe_automaton
	describeTool := mcp.NewTool("describe_automaton",
		mcp.WithDescription("Get the states, alphabet, transitions and initial state of a hosted automaton."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Name of the hosted automaton")),
		mcp.WithOutputSchema[domain.Definition](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))

	// TOOL: render_graph
	s.mcpServer.AddTool(mcp.NewTool("render_graph",
		mcp.WithDescription("Render a hosted automaton as a Mermaid flowchart, optionally highlighting the path of an input."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Name of the hosted automaton")),
		mcp.WithString("trace", mcp.Description("Input whose path should be highlighted (optional)")),
	), s.handleGraph)

	// TOOL: list_automata
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the names of hosted automata."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.manager.Names())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleProcess(ctx context.Context, request mcp.CallToolRequest, args ProcessArgs) (ProcessResponse, error) {
	if err := runner.CheckInput(args.Input); err != nil {
		s.logger.Warn("MCP process_string: input rejected", "err", err, "size", len(args.Input))
		return ProcessResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	res, rec, err := s.manager.Run(ctx, args.Automaton, args.Input)
	if err != nil {
		return ProcessResponse{}, fmt.Errorf("process failed: %w", err)
	}
	return ProcessResponse{
		ID:       rec.ID,
		Accepted: res.Accepted,
		Halt:     res.Halt,
		Trace:    res.Trace.Lines(),
	}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args AutomatonArgs) (domain.Definition, error) {
	def, err := s.manager.Describe(ctx, args.Automaton)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("describe failed: %w", err)
	}
	return def, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args GraphArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	var out string
	err := s.manager.Do(ctx, args.Automaton, func(ctx context.Context, a ports.Automaton) error {
		var overlay *graph.GraphOverlay
		if args.Trace != "" {
			res, err := a.ProcessString(ctx, args.Trace)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFromResult(res)
		}
		out = graph.GenerateMermaid(a.Inspect(), overlay)
		return nil
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

// registerResource exposes automata://<name> as the JSON definition.
func (s *Server) registerResource(name string) {
	uri := ResourceScheme + name
	s.mcpServer.AddResource(mcp.NewResource(uri, fmt.Sprintf("Automaton %s", name),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.readResource(ctx, name)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

func (s *Server) readResource(ctx context.Context, name string) (string, error) {
	def, err := s.manager.Describe(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to inspect automaton: %w", err)
	}
	jsonBytes, err := json.Marshal(def)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}
