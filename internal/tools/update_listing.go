package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/supabase"
)

type updateListingTool struct {
	client *supabase.Client
}

// UpdateListing constructs the partial-update tool.
func UpdateListing(client *supabase.Client) *updateListingTool {
	return &updateListingTool{client: client}
}

func (t *updateListingTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "update_listing_tool",
		Description: "Update an existing listing. Only the supplied fields change; omitted fields keep their stored values. Set status to mark a listing sold or inactive.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"listing_id":  {Type: "string", Description: "Id of the listing to update"},
				"title":       {Type: "string"},
				"price":       {Type: "integer"},
				"condition":   {Type: "string"},
				"category":    {Type: "string"},
				"description": {Type: "string"},
				"location":    {Type: "string"},
				"stock":       {Type: "integer"},
				"status":      {Type: "string", Description: "Lifecycle status", Enum: []string{"draft", "active", "sold", "inactive"}},
				"metadata":    {Type: "object"},
			},
			Required: []string{"listing_id"},
		},
	}
}

type updateArgs struct {
	ListingID string  `json:"listing_id"`
	Status    *string `json:"status"`
	listingArgs
}

func (t *updateListingTool) Invoke(ctx context.Context, raw json.RawMessage) (any, error) {
	var args updateArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if args.ListingID == "" {
		return nil, fmt.Errorf("listing_id is required")
	}

	fields := args.fields()
	fields.Status = args.Status
	return t.client.Update(ctx, args.ListingID, fields), nil
}
