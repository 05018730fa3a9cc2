package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
)

// Tool is one callable operation exposed to the agent. Invoke returns
// the tool's own result value; it must never panic across this
// boundary — argument problems come back as plain errors.
type Tool interface {
	Descriptor() protocol.ToolDescriptor
	Invoke(ctx context.Context, args json.RawMessage) (any, error)
}

// Envelope is the uniform wrapper the dispatcher puts around every
// tool invocation before it goes on the wire.
type Envelope struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Toolbox stores and dispatches tools by name.
type Toolbox struct {
	tools map[string]Tool
	order []string
}

// NewToolbox constructs a toolbox preserving registration order for
// tools/list.
func NewToolbox(tools ...Tool) *Toolbox {
	m := make(map[string]Tool, len(tools))
	order := make([]string, 0, len(tools))
	for _, t := range tools {
		name := t.Descriptor().Name
		if _, dup := m[name]; !dup {
			order = append(order, name)
		}
		m[name] = t
	}
	return &Toolbox{tools: m, order: order}
}

// Describe returns all tool descriptors in registration order.
func (tb *Toolbox) Describe() []protocol.ToolDescriptor {
	list := make([]protocol.ToolDescriptor, 0, len(tb.order))
	for _, name := range tb.order {
		list = append(list, tb.tools[name].Descriptor())
	}
	return list
}

// Len reports how many tools are registered.
func (tb *Toolbox) Len() int {
	return len(tb.tools)
}

// Call invokes a named tool and wraps its outcome. An unknown tool is a
// failed envelope, not a protocol error — the calling agent sees it as
// a regular tool result.
func (tb *Toolbox) Call(ctx context.Context, name string, args json.RawMessage) Envelope {
	tool, ok := tb.tools[name]
	if !ok {
		return Envelope{Success: false, Error: fmt.Sprintf("Unknown tool: %s", name)}
	}
	result, err := tool.Invoke(ctx, args)
	if err != nil {
		return Envelope{Success: false, Error: err.Error()}
	}
	return Envelope{Success: true, Result: result}
}
