// Package app wires the configuration, Supabase client, toolbox, and
// transport together.
package app

import (
	"github.com/sirupsen/logrus"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/config"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/mcp"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/supabase"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/tools"
)

// NewToolbox builds the listing toolbox over one shared client.
func NewToolbox(client *supabase.Client) *mcp.Toolbox {
	return mcp.NewToolbox(
		tools.CleanPrice(),
		tools.SearchListings(client),
		tools.InsertListing(client),
		tools.UpdateListing(client),
		tools.DeleteListing(client),
		tools.ListUserListings(client),
	)
}

// NewServer constructs the dispatcher from a config.
func NewServer(cfg config.Config, log *logrus.Entry) *mcp.Server {
	client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.RequestTimeout)
	return mcp.NewServer(NewToolbox(client), log)
}

// Run serves the MCP transport until the listener fails.
func Run(cfg config.Config, log *logrus.Entry) error {
	return mcp.Run(NewServer(cfg, log), cfg.Addr, cfg.PingInterval, log)
}
