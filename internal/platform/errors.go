package platform

import "errors"

var (
	// ErrAlreadyExists is returned when the destination exists and overwrite was not requested.
	ErrAlreadyExists = errors.New("file already exists")
	// ErrDirectoryMissing is returned when the destination's directory does not exist.
	ErrDirectoryMissing = errors.New("directory does not exist")
	// ErrNotInRepository is returned when a .github path is written outside a git repository.
	ErrNotInRepository = errors.New("not in a git repository")
)
