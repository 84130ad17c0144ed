package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/rafaeljohn9/gh-templates/internal/branding"
	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/config"
	"github.com/rafaeljohn9/gh-templates/internal/remote"
	"github.com/rafaeljohn9/gh-templates/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose   bool
	buildInfo bool

	logger = slog.New(slog.DiscardHandler)

	notice       *updater.Updater
	noticeCancel context.CancelFunc
)

// updateCheckTimeout bounds the background release check so the process
// never waits long for it on exit.
const updateCheckTimeout = 3 * time.Second

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print diagnostic logs to stderr")
	rootCmd.Flags().BoolVar(&buildInfo, "build-info", false, "Display detailed build information")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds GitHub repository files: issue and pull request
templates, license files and .gitignore templates.

  gh-templates issue add bug
  gh-templates license add mit --param "copyright holders=Ada Lovelace"
  gh-templates gitignore add go macos`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		slog.SetDefault(logger)
		config.Load()

		if skipsUpdateNotice(cmd) {
			return
		}
		startUpdateNotice(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildInfo {
			printBuildInfo(cmd.OutOrStdout())
			return nil
		}
		return cmd.Help()
	},
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// skipsUpdateNotice reports whether cmd manages version or local state
// itself and should not print the update notice.
func skipsUpdateNotice(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "update", "version", "config", "cache", "help", "completion":
			return true
		}
	}
	return false
}

// startUpdateNotice prints the cached update notice and refreshes the
// version check in the background.
func startUpdateNotice(cmd *cobra.Command) {
	s := config.Current()
	if !s.UpdateCheck {
		return
	}
	u := updater.New(buildVersion,
		remote.New(s, remote.WithLogger(logger)),
		s.ReleasesURL,
		cache.NewManager(s.CacheDir),
		updater.WithLogger(logger),
	)
	ctx, cancel := context.WithTimeout(cmd.Context(), updateCheckTimeout)
	notice, noticeCancel = u, cancel
	u.CheckAndPrintBanner(ctx, cmd.ErrOrStderr())
}

func finishUpdateNotice() {
	if notice == nil {
		return
	}
	notice.Wait()
	noticeCancel()
	notice, noticeCancel = nil, nil
}

func printBuildInfo(w io.Writer) {
	fmt.Fprintf(w, "Version: %s\n", buildVersion)
	fmt.Fprintf(w, "Commit: %s\n", buildCommit)
	fmt.Fprintf(w, "Build Time: %s\n", buildDate)
}

// Execute runs the root command with build info injected via ldflags. A
// failing command is reported as a single "Error: <message>" line on stderr.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(context.Background())
	finishUpdateNotice()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
