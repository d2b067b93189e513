package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/adminui/internal/cache"
	"github.com/rshade/adminui/internal/config"
	"github.com/rshade/adminui/internal/logging"
	"github.com/rshade/adminui/internal/tui"
)

// NewCacheCmd creates the cache command group.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Manage cached member documents"}
	cmd.AddCommand(newCacheClearCmd(), newCachePruneCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheForMaintenance()
			if err != nil {
				return err
			}
			if !yes {
				in := cmd.InOrStdin()
				res := Confirm(cmd.OutOrStdout(), in, tui.IsTerminal(in),
					fmt.Sprintf("Remove every cached document in %s?", store.Directory()))
				if !res.Accepted {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted; pass --yes to clear without prompting.")
					return nil
				}
			}
			removed, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			logCacheMaintenance(cmd, "clear", store.Directory(), removed)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached document(s) from %s\n", removed, store.Directory())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Clear without asking for confirmation")
	return cmd
}

func newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cached documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheForMaintenance()
			if err != nil {
				return err
			}
			removed, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			logCacheMaintenance(cmd, "prune", store.Directory(), removed)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired document(s) from %s\n", removed, store.Directory())
			return nil
		},
	}
}

// openCacheForMaintenance opens the cache directory even when caching is
// disabled for fetches, so old entries can still be removed.
func openCacheForMaintenance() (*cache.FileStore, error) {
	cfg := config.GetGlobalConfig()
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	store, err := cache.NewFileStore(cfg.Cache.Directory, true, ttl)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

func logCacheMaintenance(cmd *cobra.Command, op, dir string, removed int) {
	log := logging.ComponentLogger(*logging.FromContext(cmd.Context()), "cache")
	log.Info().Ctx(cmd.Context()).
		Str("operation", op).
		Str("directory", dir).
		Int("removed", removed).
		Msg("cache maintenance complete")
}
