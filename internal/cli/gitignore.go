package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rafaeljohn9/gh-templates/internal/category"
)

var (
	gitignoreAdd      addFlags
	gitignoreListOpts category.GitignoreListOptions
)

func init() {
	gitignoreAddCmd.Flags().StringVar(&gitignoreAdd.dir, "dir", "", "Directory to write .gitignore to (default: repository root)")
	gitignoreAddCmd.Flags().BoolVarP(&gitignoreAdd.force, "force", "f", false, "Overwrite an existing .gitignore")
	gitignoreAddCmd.Flags().BoolVar(&gitignoreAdd.all, "all", false, "Merge every template in the catalog")
	gitignoreAddCmd.Flags().BoolVar(&gitignoreAdd.updateCache, "update-cache", false, "Refresh the gitignore catalog and refetch cached downloads")

	f := gitignoreListCmd.Flags()
	f.BoolVarP(&gitignoreListOpts.Popular, "popular", "p", false, "Show popular templates")
	f.BoolVarP(&gitignoreListOpts.Global, "global", "g", false, "Show global (editor and OS) templates")
	f.BoolVarP(&gitignoreListOpts.Community, "community", "c", false, "Show community templates")
	f.StringVarP(&gitignoreListOpts.Search, "search", "s", "", "Wildcard pattern matched against template names")
	f.BoolVar(&gitignoreListOpts.UpdateCache, "update-cache", false, "Refresh the gitignore catalog and refetch cached downloads")

	gitignoreCmd.AddCommand(gitignoreAddCmd, gitignoreListCmd, gitignorePreviewCmd)
	rootCmd.AddCommand(gitignoreCmd)
}

var gitignoreCmd = &cobra.Command{
	Use:   "gitignore",
	Short: "Manage .gitignore templates from github/gitignore",
	Example: `  gh-templates gitignore list --global
  gh-templates gitignore add go macos visualstudiocode
  gh-templates gitignore preview python`,
}

var gitignoreAddCmd = &cobra.Command{
	Use:   "add [templates...]",
	Short: "Merge templates into one .gitignore",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *category.Service) error {
			return svc.GitignoreAdd(ctx, gitignoreAdd.request(args))
		})
	},
}

var gitignoreListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List gitignore templates by category",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *category.Service) error {
			return svc.GitignoreList(ctx, gitignoreListOpts)
		})
	},
}

var gitignorePreviewCmd = &cobra.Command{
	Use:   "preview <templates...>",
	Short: "Print gitignore templates without writing them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *category.Service) error {
			return svc.GitignorePreview(ctx, args)
		})
	},
}
