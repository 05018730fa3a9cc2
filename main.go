package main

import (
	"fmt"
	"os"

	"github.com/pazarglobal/pazarglobal-mcp-server/cmd"
	"github.com/pazarglobal/pazarglobal-mcp-server/internal/version"
)

func main() {
	cmd.SetVersion(version.Get().Version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
