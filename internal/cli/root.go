package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/adminui/internal/config"
	"github.com/rshade/adminui/internal/logging"
	"github.com/rshade/adminui/pkg/version"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the adminui CLI.
// It wires up configuration, logging and tracing, and the browse, list, cache
// and version subcommands. Running it without a subcommand browses.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, os.Args, os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with explicit args and env lookup for testability.
func NewRootCmdWithArgs(
	ver string,
	args []string,
	lookupEnv func(string) (string, bool),
) *cobra.Command {
	var logResult *logging.LogPathResult
	browse := NewBrowseCmd()

	cmd := &cobra.Command{
		Use:           "adminui",
		Short:         "Search, edit, select, delete and page through a member list",
		Long:          "adminui loads a member list once and lets an operator work on it in the terminal.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Negative values cause undefined cache expiry behavior.
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			cfg, err := loadConfig(cmd, lookupEnv)
			if err != nil {
				return err
			}
			if err = version.Check(ver, cfg.RequiredVersion); err != nil {
				return fmt.Errorf("required_version: %w", err)
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result
			logger.Debug().Ctx(cmd.Context()).
				Strs("args", args).
				Strs("sources", cfg.Sources).
				Int("page_size", cfg.PageSize).
				Msg("configuration loaded")
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: browse.RunE,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.adminui/config.yaml)")
	cmd.PersistentFlags().StringArray("source", nil,
		"member document URL, s3://bucket/key or file path (repeatable)")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "cache fetched documents for this many seconds (0 disables caching; unset uses the config)")
	cmd.PersistentFlags().Bool("strict", false, "fail when the member list cannot be loaded")
	cmd.PersistentFlags().Duration("timeout", 0, "fetch timeout (0 = use config default)")
	cmd.Flags().AddFlagSet(browse.Flags())

	cmd.AddCommand(browse, NewListCmd(), NewCacheCmd(), NewVersionCmd(ver))

	return cmd
}

// loadConfig reads the config file and applies the persistent flag overrides.
// Flags win over the environment, which wins over the file.
func loadConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	projectDir, _ := os.Getwd()

	cfg, err := config.LoadWithProject(cmd.Context(), path, projectDir, lookupEnv)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("source") {
		sources, _ := cmd.Flags().GetStringArray("source")
		cfg.Sources = sources
	}
	if cmd.Flags().Changed("cache-ttl") {
		ttl, _ := cmd.Flags().GetInt("cache-ttl")
		cfg.Cache.TTLSeconds = ttl
		cfg.Cache.Enabled = ttl > 0
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict, _ = cmd.Flags().GetBool("strict")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

const rootCmdExample = `  # Browse the default member list
  adminui

  # Browse a local copy
  adminui browse --source ./members.json

  # Merge two documents, one of them in S3
  adminui --source s3://team-bucket/members.json --source ./contractors.json

  # Print page 2 of the admins as JSON
  adminui list --search admin --page 2 --output json

  # Cache the fetched document for 10 minutes
  adminui --cache-ttl 600

  # Drop every cached document
  adminui cache clear --yes`
