package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/supabase"
)

type listUserListingsTool struct {
	client *supabase.Client
}

// ListUserListings constructs the per-owner listing tool.
func ListUserListings(client *supabase.Client) *listUserListingsTool {
	return &listUserListingsTool{client: client}
}

func (t *listUserListingsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "list_user_listings_tool",
		Description: "List one user's listings, newest first, optionally filtered by status (draft, active, sold, inactive).",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"user_id": {Type: "string", Description: "Owner id"},
				"status":  {Type: "string", Description: "Status filter", Enum: []string{"draft", "active", "sold", "inactive"}},
				"limit":   {Type: "integer", Description: "Result cap", Default: supabase.DefaultOwnerLimit},
			},
			Required: []string{"user_id"},
		},
	}
}

type listUserArgs struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
	Limit  int    `json:"limit"`
}

func (t *listUserListingsTool) Invoke(ctx context.Context, raw json.RawMessage) (any, error) {
	var args listUserArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if args.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	return t.client.ListByOwner(ctx, args.UserID, args.Status, args.Limit), nil
}
