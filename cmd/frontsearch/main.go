package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/frontsearch/internal/config"
)

var (
	envFlag    string
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:           "frontsearch",
	Short:         "Search API with an in-memory fuzzy cache",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "", "config environment (defaults to $ENV, then local)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "explicit config file, overrides --env")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "frontsearch:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the environment name and reads its configuration.
func loadConfig() (string, config.Config, error) {
	env := envFlag
	if env == "" {
		env = config.GetEnv()
	}

	var (
		cfg config.Config
		err error
	)
	if configFlag != "" {
		cfg, err = config.LoadFile(configFlag)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return env, config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return env, cfg, nil
}
