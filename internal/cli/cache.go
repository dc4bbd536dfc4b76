package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigbang/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cc, err := cache.Open(ctx, c.Config.CacheOptions())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			n, where, err := clearCache(ctx, cc)
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("%s", where)
			return nil
		},
	}
}

// clearCache empties the backends that support it.
func clearCache(ctx context.Context, cc cache.Cache) (int, string, error) {
	switch cc := cc.(type) {
	case *cache.FileCache:
		n, err := cc.Clear()
		return n, "Directory: " + cc.Dir(), err
	case *cache.RedisCache:
		n, err := cc.Clear(ctx)
		return n, "Redis", err
	}
	return 0, "", nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(c.Config.Cache.Dir)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}

// cacheDir returns the configured cache directory, or the per-user default.
func cacheDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return cache.DefaultDir()
}
