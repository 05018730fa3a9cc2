// Package tools implements the marketplace listing tools exposed over
// MCP. Each tool validates its arguments, issues at most one Supabase
// call through the injected client, and returns the uniform envelope.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/price"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
)

type cleanPriceTool struct{}

// CleanPrice constructs the price normalization tool. Pure; no network.
func CleanPrice() *cleanPriceTool {
	return &cleanPriceTool{}
}

func (t *cleanPriceTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "clean_price_tool",
		Description: "Normalize free-form price text into an integer amount. Examples: \"1,250 TL\" -> 1250, \"₺2.500\" -> 2500. Returns null when no amount can be recovered.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"price_text": {Type: "string", Description: "Price text to normalize; may be empty"},
			},
			// Required by the contract, but an empty or missing value
			// still answers {"clean_price": null} rather than erroring.
			Required: []string{"price_text"},
		},
	}
}

type cleanPriceArgs struct {
	PriceText string `json:"price_text"`
}

type cleanPriceResult struct {
	CleanPrice *int `json:"clean_price"`
}

func (t *cleanPriceTool) Invoke(_ context.Context, raw json.RawMessage) (any, error) {
	var args cleanPriceArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}

	if n, ok := price.Clean(args.PriceText); ok {
		return cleanPriceResult{CleanPrice: &n}, nil
	}
	return cleanPriceResult{}, nil
}
