package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafaeljohn9/gh-templates/internal/category"
)

// templateCommand describes a category of repository templates that share
// the add, list and preview command shape.
type templateCommand struct {
	use     string
	aliases []string
	short   string
	noun    string
	example string

	list    func(*category.Service, context.Context) error
	add     func(*category.Service, context.Context, category.AddRequest) error
	preview func(*category.Service, context.Context, []string) error
}

type addFlags struct {
	dir         string
	force       bool
	all         bool
	outputs     []string
	updateCache bool
}

func (f *addFlags) request(names []string) category.AddRequest {
	return category.AddRequest{
		Names:       names,
		Dir:         f.dir,
		Force:       f.force,
		All:         f.all,
		Outputs:     f.outputs,
		UpdateCache: f.updateCache,
	}
}

func newTemplateCmd(tc templateCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:     tc.use,
		Aliases: tc.aliases,
		Short:   tc.short,
		Example: tc.example,
	}

	var flags addFlags
	addSub := &cobra.Command{
		Use:   "add [templates...]",
		Short: "Add " + tc.noun + "s to the repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(flags.outputs) > 0 && len(args) == 0 {
				return fmt.Errorf("--output requires template names")
			}
			return withService(cmd, func(ctx context.Context, svc *category.Service) error {
				return tc.add(svc, ctx, flags.request(args))
			})
		},
	}
	addSub.Flags().StringVar(&flags.dir, "dir", "", "Directory to write the templates to")
	addSub.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing files")
	addSub.Flags().BoolVar(&flags.all, "all", false, "Add every template in the category")
	addSub.Flags().StringSliceVarP(&flags.outputs, "output", "o", nil, "Output file names, one per template")
	addSub.Flags().BoolVar(&flags.updateCache, "update-cache", false, "Refetch templates instead of using cached downloads")

	listSub := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available " + tc.noun + "s",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *category.Service) error {
				return tc.list(svc, ctx)
			})
		},
	}

	previewSub := &cobra.Command{
		Use:   "preview <templates...>",
		Short: "Print " + tc.noun + "s without writing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *category.Service) error {
				return tc.preview(svc, ctx, args)
			})
		},
	}

	cmd.AddCommand(addSub, listSub, previewSub)
	return cmd
}

var issueCmd = newTemplateCmd(templateCommand{
	use:     "issue",
	aliases: []string{"issues"},
	short:   "Manage GitHub issue templates",
	noun:    "issue template",
	example: `  gh-templates issue list
  gh-templates issue add bug feature
  gh-templates issue add bug --output crash-report --dir .github/ISSUE_TEMPLATE`,
	list:    (*category.Service).IssueList,
	add:     (*category.Service).IssueAdd,
	preview: (*category.Service).IssuePreview,
})

var prCmd = newTemplateCmd(templateCommand{
	use:     "pr",
	aliases: []string{"pull-request"},
	short:   "Manage GitHub pull request templates",
	noun:    "pull request template",
	example: `  gh-templates pr list
  gh-templates pr add default
  gh-templates pr add --all`,
	list:    (*category.Service).PRList,
	add:     (*category.Service).PRAdd,
	preview: (*category.Service).PRPreview,
})

func init() {
	rootCmd.AddCommand(issueCmd, prCmd)
}
