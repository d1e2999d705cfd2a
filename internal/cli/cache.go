package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidefit/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local snapshot and artifact cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached snapshot and artifact",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheClear,
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show how many entries the cache holds",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheStats,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := c.cacheDir()
				if err != nil {
					return fmt.Errorf("locate cache: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

// localCache opens the file cache, or returns nil when it was never created.
func (c *CLI) localCache() (*cache.FileCache, error) {
	if c.Config.Cache.RedisURL != "" {
		printWarning("Redis entries expire on their own; only the local cache is affected")
	}
	dir, err := c.cacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate cache: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) runCacheClear(*cobra.Command, []string) error {
	fc, err := c.localCache()
	if err != nil || fc == nil {
		if err == nil {
			printInfo("Cache is empty")
		}
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", fc.Dir())
	return nil
}

func (c *CLI) runCacheStats(*cobra.Command, []string) error {
	fc, err := c.localCache()
	if err != nil || fc == nil {
		if err == nil {
			printInfo("Cache is empty")
		}
		return err
	}
	u, err := fc.Usage()
	if err != nil {
		return err
	}
	printInfo("%d entries, %s", u.Entries, humanBytes(u.Bytes))
	if u.Expired > 0 {
		printDetail("%d expired, removed on next read or by 'cache clear'", u.Expired)
	}
	printDetail("Directory: %s", fc.Dir())
	return nil
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
