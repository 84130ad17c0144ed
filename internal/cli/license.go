package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rafaeljohn9/gh-templates/internal/category"
	"github.com/rafaeljohn9/gh-templates/internal/placeholder"
)

var (
	licenseAddDir         string
	licenseAddForce       bool
	licenseAddAll         bool
	licenseAddParams      []string
	licenseAddInteractive bool
	licenseAddUpdateCache bool

	licenseListOpts    category.LicenseListOptions
	licensePreviewOpts category.PreviewOptions
)

func init() {
	licenseAddCmd.Flags().StringVar(&licenseAddDir, "dir", "", "Directory to write the license files to")
	licenseAddCmd.Flags().BoolVarP(&licenseAddForce, "force", "f", false, "Overwrite existing files")
	licenseAddCmd.Flags().BoolVar(&licenseAddAll, "all", false, "Add every popular license")
	licenseAddCmd.Flags().StringArrayVarP(&licenseAddParams, "param", "P", nil, `Placeholder value as "name=value" (repeatable)`)
	licenseAddCmd.Flags().BoolVarP(&licenseAddInteractive, "interactive", "i", false, "Prompt for placeholders not set with --param")
	licenseAddCmd.Flags().BoolVar(&licenseAddUpdateCache, "update-cache", false, "Refresh the license catalogs and refetch cached downloads")

	f := licenseListCmd.Flags()
	f.BoolVarP(&licenseListOpts.Popular, "popular", "p", false, "Show only popular licenses")
	f.BoolVarP(&licenseListOpts.NonSoftware, "non-software", "n", false, "Show licenses for data, media, fonts and hardware")
	f.StringVarP(&licenseListOpts.Search, "search", "s", "", "Wildcard pattern matched against license IDs and names")
	f.BoolVar(&licenseListOpts.IncludeDeprecated, "include-deprecated", false, "Show deprecated licenses as well")
	f.BoolVar(&licenseListOpts.OSIApproved, "osi-approved", false, "Show only OSI-approved licenses")
	f.BoolVar(&licenseListOpts.FSFLibre, "fsf-libre", false, "Show only FSF libre licenses")
	f.BoolVar(&licenseListOpts.UpdateCache, "update-cache", false, "Refresh the license catalogs and refetch cached downloads")

	p := licensePreviewCmd.Flags()
	p.BoolVarP(&licensePreviewOpts.Description, "description", "d", false, "Show the license description")
	p.BoolVarP(&licensePreviewOpts.Permissions, "permissions", "p", false, "Show what the license permits")
	p.BoolVarP(&licensePreviewOpts.Limitations, "limitations", "l", false, "Show the license limitations")
	p.BoolVarP(&licensePreviewOpts.Conditions, "conditions", "c", false, "Show the license conditions")
	p.BoolVarP(&licensePreviewOpts.Details, "details", "D", false, "Show every section and the SPDX metadata")
	p.BoolVarP(&licensePreviewOpts.UpdateCache, "update-cache", "u", false, "Refresh the license catalogs and refetch cached downloads")

	licenseCmd.AddCommand(licenseAddCmd, licenseListCmd, licensePreviewCmd)
	rootCmd.AddCommand(licenseCmd)
}

var licenseCmd = &cobra.Command{
	Use:     "license",
	Aliases: []string{"licenses"},
	Short:   "Manage license files",
	Example: `  gh-templates license list --popular
  gh-templates license preview mit --permissions
  gh-templates license add mit -P year=2025 -P "copyright holders=Ada Lovelace"`,
}

var licenseAddCmd = &cobra.Command{
	Use:   "add [license-ids...]",
	Short: "Write LICENSE.<ID> files with placeholders filled in",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := placeholder.ParseParams(licenseAddParams)
		if err != nil {
			return err
		}
		return withService(cmd, func(ctx context.Context, svc *category.Service) error {
			return svc.LicenseAdd(ctx, category.LicenseAddRequest{
				IDs:         args,
				Dir:         licenseAddDir,
				Force:       licenseAddForce,
				All:         licenseAddAll,
				Params:      params,
				Interactive: licenseAddInteractive,
				UpdateCache: licenseAddUpdateCache,
			})
		})
	},
}

var licenseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List SPDX, popular or non-software licenses",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *category.Service) error {
			return svc.LicenseList(ctx, licenseListOpts)
		})
	},
}

var licensePreviewCmd = &cobra.Command{
	Use:   "preview <license-id>",
	Short: "Show a license text or a summary of its terms",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *category.Service) error {
			return svc.LicensePreview(ctx, args[0], licensePreviewOpts)
		})
	},
}
