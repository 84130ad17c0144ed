package category

import "strings"

// TemplateArgs is the parsed form of the raw arguments accepted by the
// top-level add command.
type TemplateArgs struct {
	Names []string
	Dir   string
	All   bool
	Force bool
}

// ParseTemplateArgs splits raw arguments into flags and names. It
// recognizes --dir <path> (or --dir=<path>), --all and --force/-f; any
// other argument is a name.
func ParseTemplateArgs(args []string) (TemplateArgs, error) {
	var out TemplateArgs
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--dir":
			if i+1 >= len(args) {
				return TemplateArgs{}, ErrMissingDirValue
			}
			i++
			out.Dir = args[i]
		case strings.HasPrefix(arg, "--dir="):
			out.Dir = strings.TrimPrefix(arg, "--dir=")
			if out.Dir == "" {
				return TemplateArgs{}, ErrMissingDirValue
			}
		case arg == "--all":
			out.All = true
		case arg == "--force" || arg == "-f":
			out.Force = true
		default:
			out.Names = append(out.Names, arg)
		}
	}
	return out, nil
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
