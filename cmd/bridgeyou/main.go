package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bridgeyou/search/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "bridgeyou",
	Short: "BridgeYou forum search API",
	Long: `BridgeYou forum search API.

Serves keyword and natural-language search over approved forum posts.
Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the environment and reads its config file.
func loadConfig() (string, config.Config, error) {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	return env, cfg, err
}
