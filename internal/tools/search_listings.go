package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/supabase"
)

type searchListingsTool struct {
	client *supabase.Client
}

// SearchListings constructs the filtered search tool.
func SearchListings(client *supabase.Client) *searchListingsTool {
	return &searchListingsTool{client: client}
}

func (t *searchListingsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "search_listings_tool",
		Description: "Search listings. Free-text query matches title and description case-insensitively; results come back newest first. Examples: \"iPhone\" -> query=iPhone; \"5000 TL altı laptop\" -> query=laptop, max_price=5000; \"araba var mı\" -> category=Otomotiv, metadata_type=vehicle.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"query":         {Type: "string", Description: "Free-text search over title and description"},
				"category":      {Type: "string", Description: "Category filter (case-insensitive)"},
				"condition":     {Type: "string", Description: "Condition filter, \"new\" or \"used\""},
				"location":      {Type: "string", Description: "Location filter"},
				"min_price":     {Type: "integer", Description: "Minimum price"},
				"max_price":     {Type: "integer", Description: "Maximum price"},
				"limit":         {Type: "integer", Description: "Result cap", Default: supabase.DefaultSearchLimit},
				"metadata_type": {Type: "string", Description: "Metadata type filter: vehicle, part, accessory"},
			},
		},
	}
}

type searchArgs struct {
	Query        string `json:"query"`
	Category     string `json:"category"`
	Condition    string `json:"condition"`
	Location     string `json:"location"`
	MinPrice     *int   `json:"min_price"`
	MaxPrice     *int   `json:"max_price"`
	Limit        int    `json:"limit"`
	MetadataType string `json:"metadata_type"`
}

func (t *searchListingsTool) Invoke(ctx context.Context, raw json.RawMessage) (any, error) {
	var args searchArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}

	return t.client.Search(ctx, supabase.SearchParams{
		Query:        args.Query,
		Category:     args.Category,
		Condition:    args.Condition,
		Location:     args.Location,
		MetadataType: args.MetadataType,
		MinPrice:     args.MinPrice,
		MaxPrice:     args.MaxPrice,
		Limit:        args.Limit,
	}), nil
}
