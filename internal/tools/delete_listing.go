package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/supabase"
)

type deleteListingTool struct {
	client *supabase.Client
}

// DeleteListing constructs the deletion tool.
func DeleteListing(client *supabase.Client) *deleteListingTool {
	return &deleteListingTool{client: client}
}

func (t *deleteListingTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "delete_listing_tool",
		Description: "Delete a listing by id. This is a hard delete; the row is gone.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"listing_id": {Type: "string", Description: "Id of the listing to delete"},
			},
			Required: []string{"listing_id"},
		},
	}
}

type deleteArgs struct {
	ListingID string `json:"listing_id"`
}

func (t *deleteListingTool) Invoke(ctx context.Context, raw json.RawMessage) (any, error) {
	var args deleteArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if args.ListingID == "" {
		return nil, fmt.Errorf("listing_id is required")
	}

	return t.client.Delete(ctx, args.ListingID), nil
}
