package category

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested name is not in the catalog.
	ErrNotFound = errors.New("not found")

	// ErrOutputCount is returned when --output names do not pair up with
	// the requested templates.
	ErrOutputCount = errors.New("the number of templates and output file names must match")

	// ErrMissingDirValue is returned when --dir is the last argument.
	ErrMissingDirValue = errors.New("expected a directory path after --dir")
)

// MissingNamesError reports an operation invoked without any names.
type MissingNamesError struct {
	Kind     string
	AllowAll bool
}

func (e *MissingNamesError) Error() string {
	if e.AllowAll {
		return fmt.Sprintf("no %s specified. Use --all or pass %s names", e.Kind, e.Kind)
	}
	return fmt.Sprintf("no %s specified. Pass %s names as arguments", e.Kind, e.Kind)
}

// Failure is one failed item of a batch.
type Failure struct {
	Name string
	Err  error
}

// BatchError lists the items of a batch that failed after every item ran.
type BatchError struct {
	Op     string
	Total  int
	Failed []Failure
}

func (e *BatchError) Error() string {
	names := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		names[i] = f.Name
	}
	return fmt.Sprintf("%s: %d of %d failed: %s", e.Op, len(e.Failed), e.Total, joinNames(names))
}

// Unwrap exposes the individual item errors to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f.Err
	}
	return errs
}
