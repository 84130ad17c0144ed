package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rafaeljohn9/gh-templates/internal/category"
)

var categories = []string{"issue", "pr", "license", "gitignore"}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, previewCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <category> [names...] [--dir <path>] [--all] [--force]",
	Short: "Add templates of a category",
	Long: `Add templates of a category. Flags may appear anywhere after the category.

  gh-templates add issue bug feature --dir docs/forms
  gh-templates add license mit --force
  gh-templates add pr --all`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, rest, err := splitCategory(cmd, args)
		if err != nil || cat == "" {
			return err
		}
		parsed, err := category.ParseTemplateArgs(rest)
		if err != nil {
			return err
		}
		req := category.AddRequest{Names: parsed.Names, Dir: parsed.Dir, Force: parsed.Force, All: parsed.All}

		return withService(cmd, func(ctx context.Context, svc *category.Service) error {
			switch cat {
			case "issue":
				return svc.IssueAdd(ctx, req)
			case "pr":
				return svc.PRAdd(ctx, req)
			case "license":
				return svc.LicenseAdd(ctx, category.LicenseAddRequest{IDs: req.Names, Dir: req.Dir, Force: req.Force, All: req.All})
			default:
				return svc.GitignoreAdd(ctx, req)
			}
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list <category> [flags]",
	Short: "List templates of a category",
	Long: `List templates of a category. Remaining arguments are the flags of
"<category> list", e.g. "gh-templates list license --popular".`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return forward(cmd, args, "list")
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <category> <names...> [flags]",
	Short: "Preview templates of a category",
	Long: `Preview templates of a category. Remaining arguments are passed to
"<category> preview", e.g. "gh-templates preview license mit --conditions".`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return forward(cmd, args, "preview")
	},
}

// splitCategory returns the category named by the first argument and the
// arguments after it. A help request prints help and returns an empty
// category.
func splitCategory(cmd *cobra.Command, args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("missing category (expected one of %v)", categories)
	}
	if args[0] == "-h" || args[0] == "--help" {
		return "", nil, cmd.Help()
	}
	cat := args[0]
	switch cat {
	case "issues":
		cat = "issue"
	case "licenses":
		cat = "license"
	}
	if !slices.Contains(categories, cat) {
		return "", nil, fmt.Errorf("unknown category %q (expected one of %v)", args[0], categories)
	}
	return cat, args[1:], nil
}

// forward runs the "<category> <verb>" subcommand with the remaining
// arguments, so both command orders accept the same flags.
func forward(cmd *cobra.Command, args []string, verb string) error {
	cat, rest, err := splitCategory(cmd, args)
	if err != nil || cat == "" {
		return err
	}
	sub, _, err := rootCmd.Find([]string{cat, verb})
	if err != nil {
		return err
	}
	if err := sub.ParseFlags(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return sub.Help()
		}
		return err
	}
	if sub.Args != nil {
		if err := sub.Args(sub, sub.Flags().Args()); err != nil {
			return err
		}
	}
	sub.SetContext(cmd.Context())
	return sub.RunE(sub, sub.Flags().Args())
}
