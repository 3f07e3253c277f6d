package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	poolConfigPath string
	nodeConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "seedpool",
	Short: "Token staking pool node and CLI",
	Long: `seedpool runs the staking pool accounting node and provides admin and
participant commands against its local state: pool initialization, custody
funding, stake lifecycle transitions and balance queries.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&poolConfigPath, "pool-config", "config/pool.yml", "Path to the pool YAML config")
	rootCmd.PersistentFlags().StringVar(&nodeConfigPath, "node-config", "config/node.ini", "Path to the node INI config")
}
