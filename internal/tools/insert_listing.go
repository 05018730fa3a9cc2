package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/protocol"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/supabase"
)

type insertListingTool struct {
	client *supabase.Client
}

// InsertListing constructs the listing creation tool.
func InsertListing(client *supabase.Client) *insertListingTool {
	return &insertListingTool{client: client}
}

func (t *insertListingTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "insert_listing_tool",
		Description: "Create a new marketplace listing. Only title is required; the server assigns the id and timestamp and the listing starts as active. Vehicle attributes (brand, model, year) belong in metadata.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"title":       {Type: "string", Description: "Listing title"},
				"user_id":     {Type: "string", Description: "Owner id (UUID supplied by the WhatsApp integration)"},
				"price":       {Type: "integer", Description: "Price in the smallest currency unit"},
				"condition":   {Type: "string", Description: "Item condition, e.g. \"new\" or \"used\""},
				"category":    {Type: "string", Description: "Category name"},
				"description": {Type: "string", Description: "Free-text description"},
				"location":    {Type: "string", Description: "City or district"},
				"stock":       {Type: "integer", Description: "Units available"},
				"metadata":    {Type: "object", Description: "Open key-value document, e.g. {\"type\":\"vehicle\",\"brand\":\"BMW\",\"year\":2018}"},
			},
			Required: []string{"title"},
		},
	}
}

type listingArgs struct {
	Title       *string        `json:"title"`
	UserID      *string        `json:"user_id"`
	Price       *int           `json:"price"`
	Condition   *string        `json:"condition"`
	Category    *string        `json:"category"`
	Description *string        `json:"description"`
	Location    *string        `json:"location"`
	Stock       *int           `json:"stock"`
	Metadata    map[string]any `json:"metadata"`
}

func (a listingArgs) fields() supabase.ListingFields {
	return supabase.ListingFields{
		Title:       a.Title,
		UserID:      a.UserID,
		Price:       a.Price,
		Condition:   a.Condition,
		Category:    a.Category,
		Description: a.Description,
		Location:    a.Location,
		Stock:       a.Stock,
		Metadata:    a.Metadata,
	}
}

func (t *insertListingTool) Invoke(ctx context.Context, raw json.RawMessage) (any, error) {
	var args listingArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if args.Title == nil || *args.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	return t.client.Insert(ctx, args.fields()), nil
}
