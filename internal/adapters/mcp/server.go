// Package mcp exposes the conversation engine as an MCP tool server, so
// agent hosts can drive a guided session over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sereno-labs/sereno"
	"github.com/sereno-labs/sereno/pkg/conversation"
	"github.com/sereno-labs/sereno/pkg/domain"
)

// Server wraps the orchestrator and exposes it as an MCP server.
type Server struct {
	orch      *conversation.Orchestrator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers the tool set.
func NewServer(orch *conversation.Orchestrator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		orch:      orch,
		logger:    logger,
		mcpServer: server.NewMCPServer("sereno", sereno.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
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

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// toolSpec describes one registered tool: the command it issues and
// whether it takes a free-text argument.
type toolSpec struct {
	name        string
	description string
	command     string
	argName     string
	argDesc     string
}

var toolSpecs = []toolSpec{
	{"therapy_start", "Start a guided session for the given user", domain.CmdStart, "", ""},
	{"therapy_feel", "Set the current emotion using the wheel taxonomy", domain.CmdFeel, "emotion", "Emotion term (primary/variant/blend)"},
	{"therapy_ask", "Free-form ask; analyze text and continue the conversation", domain.CmdAsk, "message", "User message"},
	{"therapy_wheel", "Show the wheel of emotions guide", domain.CmdWheel, "", ""},
	{"therapy_why", "Ask diagnostic questions about the current emotion", domain.CmdWhy, "", ""},
	{"therapy_remedy", "Suggest remedies for the current emotion", domain.CmdRemedy, "", ""},
	{"therapy_breathe", "Guided breathing exercise", domain.CmdBreathe, "", ""},
	{"therapy_quote", "Share a supportive quote", domain.CmdQuote, "", ""},
	{"therapy_journal", "Offer a journaling prompt", domain.CmdJournal, "", ""},
	{"therapy_audio", "Suggest an audio grounding exercise", domain.CmdAudio, "", ""},
	{"therapy_checkin", "Check in and start or continue a session", domain.CmdCheckin, "", ""},
	{"therapy_moodlog", "Show the recent mood history", domain.CmdMoodlog, "", ""},
	{"therapy_sos", "Emergency protocol", domain.CmdSOS, "", ""},
	{"therapy_exit", "End the session and clear its data", domain.CmdExit, "", ""},
	{"therapy_status", "Show current state and available commands", domain.CmdStatus, "", ""},
}

func (s *Server) registerTools() {
	for _, spec := range toolSpecs {
		opts := []mcp.ToolOption{
			mcp.WithDescription(spec.description),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
		}
		if spec.argName != "" {
			opts = append(opts, mcp.WithString(spec.argName, mcp.Required(), mcp.Description(spec.argDesc)))
		}
		tool := mcp.NewTool(spec.name, opts...)
		s.mcpServer.AddTool(tool, s.handlerFor(spec))
	}
}

func (s *Server) handlerFor(spec toolSpec) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := req.RequireString("user_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		raw := "/" + spec.command
		if spec.argName != "" {
			arg, err := req.RequireString(spec.argName)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			raw += " " + arg
		}

		result, err := s.orch.Handle(ctx, userID, raw)
		if err != nil {
			s.logger.Error("tool failed", "tool", spec.name, "user_id", userID, "err", err)
			return mcp.NewToolResultError("temporarily unavailable, please retry"), nil
		}

		payload, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
