package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafaeljohn9/gh-templates/internal/branding"
	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/config"
	"github.com/rafaeljohn9/gh-templates/internal/remote"
	"github.com/rafaeljohn9/gh-templates/internal/updater"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check GitHub releases for a newer version",
	Long: `Checks the latest GitHub release and reports whether it is newer than the
running binary. Install the new release with the package manager or archive
you installed ` + branding.CLIName() + ` from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		u := updater.New(buildVersion,
			remote.New(s, remote.WithLogger(logger)),
			s.ReleasesURL,
			cache.NewManager(s.CacheDir),
			updater.WithLogger(logger),
		)

		fmt.Fprintln(cmd.ErrOrStderr(), "Checking for updates...")
		res, err := u.Check(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case res.Available:
			fmt.Fprintf(out, "Update available: %s -> %s\n", res.Current, res.Latest)
			if res.URL != "" {
				fmt.Fprintf(out, "Download it from %s\n", res.URL)
			}
		case !updater.IsRelease(res.Current):
			fmt.Fprintf(out, "Running a development build; the latest release is %s\n", res.Latest)
		default:
			fmt.Fprintf(out, "You are on the latest version (%s)\n", res.Current)
		}
		return nil
	},
}
