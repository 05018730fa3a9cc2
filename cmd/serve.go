package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/app"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/config"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/logging"
)

var serveFlags struct {
	addr       string
	configPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over SSE + HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load(serveFlags.configPath)
		if err != nil {
			return err
		}
		if serveFlags.addr != "" {
			cfg.Addr = serveFlags.addr
		}

		log := logging.New("mcp-server", cfg.LogLevel)
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
			log.Warn("SUPABASE_URL or SUPABASE_SERVICE_KEY is not set; listing tools will report config errors")
		}

		return app.Run(cfg, log)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address (overrides config, e.g. :8000)")
	serveCmd.Flags().StringVar(&serveFlags.configPath, "config", "", "path to a YAML config file")
}
