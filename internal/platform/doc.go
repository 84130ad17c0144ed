// Package platform writes generated files into the user's repository.
//
// Paths whose first element is .github are resolved against the root of the
// enclosing git repository and their parent directories are created on
// demand. Any other relative path is resolved against the writer's base
// directory, whose target directory must already exist. Existing files are
// only replaced when the caller asks for it.
package platform
