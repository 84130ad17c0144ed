package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rafaeljohn9/gh-templates/internal/cache"
	"github.com/rafaeljohn9/gh-templates/internal/category"
	"github.com/rafaeljohn9/gh-templates/internal/config"
	"github.com/rafaeljohn9/gh-templates/internal/console"
	"github.com/rafaeljohn9/gh-templates/internal/placeholder"
	"github.com/rafaeljohn9/gh-templates/internal/platform"
	"github.com/rafaeljohn9/gh-templates/internal/remote"
	"github.com/rafaeljohn9/gh-templates/internal/remote/respcache"
)

const responseCacheFile = "responses.db"

// app holds the per-invocation wiring shared by the category commands.
type app struct {
	settings config.Settings
	cache    *cache.Manager
	store    *respcache.Store
	svc      *category.Service
}

func newApp(cmd *cobra.Command) (*app, error) {
	s := config.Current()
	a := &app{settings: s, cache: cache.NewManager(s.CacheDir)}

	opts := []remote.Option{remote.WithLogger(logger)}
	if s.ResponseCacheTTL > 0 {
		store, err := openResponseCache(s)
		if err != nil {
			logger.Debug("response cache unavailable, fetching uncached", "error", err)
		} else {
			a.store = store
			opts = append(opts, remote.WithResponseCache(store, s.ResponseCacheTTL))
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	a.svc = category.New(s,
		remote.New(s, opts...),
		a.cache,
		platform.NewWriter(cwd),
		console.New(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		category.WithLogger(logger),
		category.WithPrompter(newPrompter(cmd)),
	)
	return a, nil
}

func openResponseCache(s config.Settings) (*respcache.Store, error) {
	if err := os.MkdirAll(s.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return respcache.Open(filepath.Join(s.CacheDir, responseCacheFile), respcache.Options{DefaultTTL: s.ResponseCacheTTL})
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		logger.Debug("closing response cache", "error", err)
	}
}

// newPrompter asks with survey on a terminal and reads plain lines otherwise.
func newPrompter(cmd *cobra.Command) placeholder.Prompter {
	if console.IsTerminal(cmd.InOrStdin()) && console.IsTerminal(cmd.ErrOrStderr()) {
		return placeholder.NewSurveyPrompter()
	}
	return placeholder.NewLinePrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// withService runs fn against a freshly wired category service.
func withService(cmd *cobra.Command, fn func(ctx context.Context, svc *category.Service) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(cmd.Context(), a.svc)
}
