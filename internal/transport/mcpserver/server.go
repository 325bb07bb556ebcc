package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/log"
)

const (
	defaultRecallLimit = 3
	defaultListLimit   = 10
)

type Recaller interface {
	Search(ctx context.Context, query string, k int) ([]core.SemanticHit, error)
	List(ctx context.Context, limit int) ([]core.MemoryRecord, error)
}

type StatusReader interface {
	Status(ctx context.Context) (core.RelationshipStatus, error)
}

type Briefer interface {
	Compose(ctx context.Context) string
}

// Server exposes the companion's memory, relationship and briefing over
// MCP on stdio. It never runs a conversation turn.
type Server struct {
	mcp    *server.MCPServer
	memory Recaller
	status StatusReader
	brief  Briefer
	in     io.Reader
	out    io.Writer
}

func NewServer(memory Recaller, status StatusReader, brief Briefer) *Server {
	s := &Server{
		memory: memory,
		status: status,
		brief:  brief,
		in:     os.Stdin,
		out:    os.Stdout,
	}

	s.mcp = server.NewMCPServer(
		strings.ToLower(core.AppName),
		core.AppVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcp.AddTool(mcp.NewTool("recall_memories",
		mcp.WithDescription("Search the companion's long-term memories by meaning. Returns the closest matches first."),
		mcp.WithString("query", mcp.Required(), mcp.Description("What to look for")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of memories to return (default 3)")),
	), s.recallMemories)

	s.mcp.AddTool(mcp.NewTool("list_memories",
		mcp.WithDescription("List stored memories, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of memories to return (default 10)")),
	), s.listMemories)

	s.mcp.AddTool(mcp.NewTool("relationship_status",
		mcp.WithDescription("Current relationship level, points and progress towards the next level."),
	), s.relationshipStatus)

	s.mcp.AddTool(mcp.NewTool("daily_briefing",
		mcp.WithDescription("Compose today's briefing with weather and an inspirational quote."),
	), s.dailyBriefing)

	return s
}

func (s *Server) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx).With().Str("component", "mcpserver").Logger()
	logger.Info().Msg("serving mcp on stdio")

	stdio := server.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, s.in, s.out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(context.Context) error {
	return nil
}

func (s *Server) recallMemories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	hits, err := s.memory.Search(ctx, query, positive(req.GetInt("limit", defaultRecallLimit), defaultRecallLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type match struct {
		ID    string  `json:"id"`
		Text  string  `json:"text"`
		Score float32 `json:"score"`
		Type  string  `json:"memory_type,omitempty"`
	}
	out := make([]match, 0, len(hits))
	for _, h := range hits {
		out = append(out, match{ID: h.ID, Text: h.Text, Score: h.Score, Type: h.Metadata["type"]})
	}
	return jsonResult(out)
}

func (s *Server) listMemories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := s.memory.List(ctx, positive(req.GetInt("limit", defaultListLimit), defaultListLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if records == nil {
		records = []core.MemoryRecord{}
	}
	return jsonResult(records)
}

func (s *Server) relationshipStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.status.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

// dailyBriefing composes without persisting; MCP callers are not part of
// the conversation.
func (s *Server) dailyBriefing(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.brief.Compose(ctx)), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

func positive(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
