// Package commands holds the directory command line.
package commands

import (
	"fmt"

	"github.com/Sternrassler/employee-directory/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const flagConfig = "config"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "directory",
		Short:         "Browse the employee directory one page at a time",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(flagConfig, "c", "", "config file path (yaml, json or toml)")
	flags.String(config.KeyEndpoint, "", "directory endpoint URL")
	flags.String(config.KeyUserAgent, "", "User-Agent sent with the fetch")
	flags.String(config.KeyLogLevel, "", "log level (debug, info, warn, error)")
	flags.Bool(config.KeyLogPretty, false, "human-readable log output")

	rootCmd.AddCommand(
		NewBrowseCommand(),
		NewServeCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

// loadConfig merges defaults, the config file, DIRECTORY_* variables and the
// flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()

	flags := cmd.Flags()
	for _, key := range []string{
		config.KeyEndpoint,
		config.KeyUserAgent,
		config.KeyLogLevel,
		config.KeyLogPretty,
		config.KeyAddr,
		config.KeyRedisAddr,
		config.KeySessionTTL,
	} {
		f := flags.Lookup(key)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	path, err := flags.GetString(flagConfig)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
