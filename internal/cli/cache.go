package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/config"
	"github.com/rafaeljohn9/gh-templates/internal/remote/respcache"
)

// responsesSlot names the response cache in "cache clear".
const responsesSlot = "responses"

func init() {
	cacheCmd.AddCommand(cacheStatusCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear cached catalogs",
	Long: `Catalogs (SPDX and popular licenses, gitignore templates, the last version
check) are cached as JSON files in the cache directory and refreshed when
stale. Raw template bodies are kept in a separate response cache.`,
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cached catalogs and their age",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		out := cmd.OutOrStdout()

		slots, err := cache.NewManager(s.CacheDir).List()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cache directory: %s\n", s.CacheDir)
		if len(slots) == 0 {
			fmt.Fprintln(out, "No cached catalogs.")
		} else {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVERSION\tENTRIES\tUPDATED")
			for _, slot := range slots {
				if slot.Corrupt {
					fmt.Fprintf(w, "%s\t-\t-\tcorrupt\n", slot.Name)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s ago\n", slot.Name, slot.Version, slot.Entries, time.Since(slot.ModTime).Round(time.Minute))
			}
			w.Flush()
		}

		path := filepath.Join(s.CacheDir, responseCacheFile)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
		store, err := respcache.Open(path, respcache.Options{})
		if err != nil {
			fmt.Fprintf(out, "Response cache: unavailable (%v)\n", err)
			return nil
		}
		defer store.Close()
		n, err := store.Len()
		if err != nil {
			return fmt.Errorf("reading response cache: %w", err)
		}
		fmt.Fprintf(out, "Response cache: %d entries\n", n)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [name]",
	Short: "Remove one cached catalog, or everything",
	Long: `Remove the named cache slot (e.g. spdx_licenses, gitignore, responses), or
every slot and the response cache when no name is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		out := cmd.OutOrStdout()
		m := cache.NewManager(s.CacheDir)

		if len(args) == 1 && args[0] != responsesSlot {
			if _, err := m.Stat(args[0]); err != nil {
				return err
			}
			if err := m.Clear(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleared %s\n", args[0])
			return nil
		}

		if len(args) == 0 {
			removed, err := m.ClearAll()
			if err != nil {
				return err
			}
			for _, name := range removed {
				fmt.Fprintf(out, "Cleared %s\n", name)
			}
		}

		n, err := purgeResponses(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %d cached responses\n", n)
		return nil
	},
}

func purgeResponses(s config.Settings) (int, error) {
	path := filepath.Join(s.CacheDir, responseCacheFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, nil
	}
	store, err := respcache.Open(path, respcache.Options{})
	if err != nil {
		return 0, fmt.Errorf("opening response cache: %w", err)
	}
	defer store.Close()
	n, err := store.Purge()
	if err != nil {
		return 0, fmt.Errorf("clearing response cache: %w", err)
	}
	return n, nil
}
