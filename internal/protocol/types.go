// Package protocol holds the JSON-RPC 2.0 shapes spoken over the MCP
// transport: requests, responses, and the tool catalogue types.
package protocol

import "encoding/json"

// Request is a minimal JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is a JSON-RPC 2.0 response keyed by the caller's request id.
type Response struct {
	JSONRPC string         `json:"jsonrpc,omitempty"`
	ID      any            `json:"id"`
	Result  any            `json:"result,omitempty"`
	Error   *ResponseError `json:"error,omitempty"`
}

// ResponseError carries protocol-level failures (unknown method,
// invalid params). Tool-level failures travel inside results instead.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ToolDescriptor advertises one tool in the tools/list catalogue.
type ToolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema *JSONSchema `json:"inputSchema,omitempty"`
}

// JSONSchema is the subset of JSON Schema needed to describe tool
// arguments.
type JSONSchema struct {
	Type        string                `json:"type,omitempty"`
	Properties  map[string]JSONSchema `json:"properties,omitempty"`
	Required    []string              `json:"required,omitempty"`
	Items       *JSONSchema           `json:"items,omitempty"`
	Enum        []string              `json:"enum,omitempty"`
	Default     any                   `json:"default,omitempty"`
	Description string                `json:"description,omitempty"`
}

// ListResult is the tools/list payload.
type ListResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// CallParams are the tools/call parameters.
type CallParams struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"arguments,omitempty"`
}

// ContentPart is one piece of tool output.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the tools/call payload: the tool's envelope rendered as
// a single text content part.
type CallResult struct {
	Content []ContentPart `json:"content"`
}
