package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ManagedDir is the directory whose subtree is created on demand.
const ManagedDir = ".github"

// Writer saves text files relative to a base directory.
type Writer struct {
	// BaseDir anchors relative paths outside .github. Defaults to the
	// working directory.
	BaseDir string
	// FindRoot locates the repository root for .github paths. Defaults to
	// FindRepoRoot.
	FindRoot func(start string) (string, error)
}

// NewWriter returns a Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{BaseDir: baseDir, FindRoot: FindRepoRoot}
}

func (w *Writer) base() (string, error) {
	if w.BaseDir != "" {
		return w.BaseDir, nil
	}
	return os.Getwd()
}

// IsManaged reports whether path lives under the .github tree.
func IsManaged(path string) bool {
	if filepath.IsAbs(path) {
		return false
	}
	first, _, _ := strings.Cut(filepath.ToSlash(filepath.Clean(path)), "/")
	return first == ManagedDir
}

// Resolve returns the absolute destination for path.
func (w *Writer) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	base, err := w.base()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	if !IsManaged(path) {
		return filepath.Join(base, path), nil
	}

	root, err := w.root(base)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, path), nil
}

// RepoRoot returns the root of the repository containing BaseDir.
func (w *Writer) RepoRoot() (string, error) {
	base, err := w.base()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return w.root(base)
}

func (w *Writer) root(base string) (string, error) {
	if w.FindRoot != nil {
		return w.FindRoot(base)
	}
	return FindRepoRoot(base)
}

// Write saves content to path and returns the resolved destination.
func (w *Writer) Write(path, content string, overwrite bool) (string, error) {
	dest, err := w.Resolve(path)
	if err != nil {
		return "", err
	}

	parent := filepath.Dir(dest)
	if IsManaged(path) {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return "", fmt.Errorf("creating %s: %w", parent, err)
		}
	} else if fi, err := os.Stat(parent); err != nil || !fi.IsDir() {
		return "", fmt.Errorf("%w: %s/ (create it or run from within a git repository)", ErrDirectoryMissing, parent)
	}

	if _, err := os.Stat(dest); err == nil && !overwrite {
		return "", fmt.Errorf("%w: %s. Use --force to overwrite", ErrAlreadyExists, dest)
	}

	if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

// Exists reports whether the resolved destination for path already exists.
func (w *Writer) Exists(path string) bool {
	dest, err := w.Resolve(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(dest)
	return err == nil
}

// FindRepoRoot returns the work tree root of the git repository containing
// start, searching parent directories.
func FindRepoRoot(start string) (string, error) {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s (use --dir to choose an output directory)", ErrNotInRepository, start)
		}
		return "", fmt.Errorf("opening repository at %s: %w", start, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %s has no work tree", ErrNotInRepository, start)
	}
	return wt.Filesystem.Root(), nil
}
