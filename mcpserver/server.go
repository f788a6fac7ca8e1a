// Package mcpserver exposes the railway tool set over the Model Context
// Protocol, so any MCP-capable agent runtime can drive it.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/llmutils"
	"github.com/effective-security/railgentic/railapi"
	"github.com/effective-security/railgentic/tools"
	"github.com/effective-security/railgentic/tools/railway"
	"github.com/effective-security/xlog"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/railgentic", "mcpserver")

// Config holds MCP server identification.
type Config struct {
	Name    string
	Version string
}

// Server wraps the MCP SDK server with the railway tool set.
type Server struct {
	mcpServer *mcp.Server
	cfg       Config
}

// New creates the MCP server and registers all railway tools on it.
func New(cfg Config, client *railapi.Client) (*Server, error) {
	if cfg.Name == "" {
		return nil, errors.New("server name is required")
	}
	if cfg.Version == "" {
		return nil, errors.New("server version is required")
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
		cfg: cfg,
	}

	if err := registerAll(s.mcpServer, client); err != nil {
		return nil, errors.WithMessage(err, "failed to register tools")
	}
	return s, nil
}

// Run serves MCP on the given transport until the context is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	logger.KV(xlog.INFO, "status", "serving", "name", s.cfg.Name, "version", s.cfg.Version)
	return s.mcpServer.Run(ctx, transport)
}

// Connect attaches the server to a transport and returns the session,
// used by tests with in-memory transports.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, transport, nil)
}

func registerAll(s *mcp.Server, client *railapi.Client) error {
	if err := addTool(s, railway.NewPNRStatus(client)); err != nil {
		return err
	}
	if err := addTool(s, railway.NewStationSearch(client)); err != nil {
		return err
	}
	if err := addTool(s, railway.NewLiveStation(client)); err != nil {
		return err
	}
	if err := addTool(s, railway.NewTrainSchedule(client)); err != nil {
		return err
	}
	if err := addTool(s, railway.NewFare(client)); err != nil {
		return err
	}
	if err := addTool(s, railway.NewLiveTrainStatus(client)); err != nil {
		return err
	}
	if err := addTool(s, railway.NewSeatAvailability(client)); err != nil {
		return err
	}
	return addTool(s, railway.NewTrainSearch(client))
}

// addTool registers one typed tool. The input schema is the same
// function-parameter schema the tool reports to other agent runtimes.
func addTool[I any, O any](s *mcp.Server, t tools.Tool[I, O]) error {
	sc, err := toSDKSchema(t.Parameters())
	if err != nil {
		return errors.WithMessagef(err, "schema for %s", t.Name())
	}

	mcp.AddTool(s, &mcp.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: sc,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in I) (*mcp.CallToolResult, any, error) {
		out, err := t.Run(ctx, &in)
		if err != nil {
			// domain failures are structured results for the model,
			// not protocol errors
			logger.ContextKV(ctx, xlog.DEBUG,
				"tool", t.Name(),
				"status", "tool_failed",
				"err", err.Error(),
			)
			return textResult(llmutils.ToJSON(map[string]string{"error": err.Error()})), nil, nil
		}
		return textResult(llmutils.ToJSON(out)), nil, nil
	})
	return nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// toSDKSchema converts a reflected function-parameter schema into the
// SDK's schema type via a JSON round trip.
func toSDKSchema(params any) (*jsonschema.Schema, error) {
	js, err := json.Marshal(params)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var sc jsonschema.Schema
	if err := json.Unmarshal(js, &sc); err != nil {
		return nil, errors.WithStack(err)
	}
	return &sc, nil
}
