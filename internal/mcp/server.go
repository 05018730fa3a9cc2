// Package mcp implements the tool-calling protocol server: a JSON-RPC
// dispatcher over an SSE + POST HTTP transport.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/version"
)

// ServerName identifies this server to MCP clients.
const ServerName = "pazarglobal-mcp-server"

const protocolVersion = "2024-11-05"

// Server routes MCP JSON-RPC requests to a toolbox. It keeps no state
// between requests; concurrent calls need no coordination.
type Server struct {
	toolbox *Toolbox
	log     *logrus.Entry
}

// NewServer wires a toolbox into an MCP server.
func NewServer(tb *Toolbox, log *logrus.Entry) *Server {
	return &Server{toolbox: tb, log: log}
}

// Toolbox exposes the wired toolbox.
func (s *Server) Toolbox() *Toolbox {
	return s.toolbox
}

// Handle routes a single request. Protocol faults come back as JSON-RPC
// errors; tool outcomes, including failures, come back as results.
func (s *Server) Handle(ctx context.Context, req protocol.Request) protocol.Response {
	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		return errorResponse(req.ID, -32600, "invalid jsonrpc version")
	}

	switch req.Method {
	case "initialize":
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]string{
				"name":    ServerName,
				"version": version.Get().Version,
			},
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		}}
	case "ping":
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: map[string]any{}}
	case "tools/list":
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: protocol.ListResult{Tools: s.toolbox.Describe()}}
	case "tools/call":
		var params protocol.CallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, -32602, "invalid params")
		}
		if params.Name == "" {
			return errorResponse(req.ID, -32602, "tool name required")
		}
		s.log.WithField("tool", params.Name).Info("executing tool")
		env := s.toolbox.Call(ctx, params.Name, params.Args)
		if !env.Success {
			s.log.WithField("tool", params.Name).Warnf("tool failed: %s", env.Error)
		}
		text, err := json.Marshal(env)
		if err != nil {
			return errorResponse(req.ID, -32603, fmt.Sprintf("encode result: %v", err))
		}
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: protocol.CallResult{
			Content: []protocol.ContentPart{{Type: "text", Text: string(text)}},
		}}
	default:
		return errorResponse(req.ID, -32601, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func errorResponse(id any, code int, message string) protocol.Response {
	return protocol.Response{JSONRPC: "2.0", ID: normalizeID(id), Error: &protocol.ResponseError{Code: code, Message: message}}
}

func normalizeID(id any) any {
	if id == nil {
		return "0"
	}
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return v
	case int, int32, int64, uint32, uint64:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
