package config

import (
	"path/filepath"
	"time"

	"github.com/rafaeljohn9/gh-templates/internal/branding"
	"github.com/spf13/viper"
)

// Setting keys. Each is also readable from GH_TEMPLATES_<KEY>.
const (
	KeyTemplatesRawURL      = "templates_raw_url"
	KeyTemplatesAPIURL      = "templates_api_url"
	KeyGitignoreAPIURL      = "gitignore_api_url"
	KeyGitignoreRawURL      = "gitignore_raw_url"
	KeyGitHubLicensesURL    = "github_licenses_url"
	KeySPDXListURL          = "spdx_list_url"
	KeySPDXDetailsURL       = "spdx_details_url"
	KeyChooseALicenseURL    = "choosealicense_url"
	KeyReleasesURL          = "releases_url"
	KeyUserAgent            = "user_agent"
	KeyTimeout              = "timeout"
	KeyCacheDir             = "cache_dir"
	KeyLicenseCacheMaxAge   = "license_cache_max_age"
	KeyGitignoreCacheMaxAge = "gitignore_cache_max_age"
	KeyResponseCacheTTL     = "response_cache_ttl"
	KeyWorkers              = "workers"
	KeyUpdateCheck          = "update_check"
)

// Settings is the single consolidated set of remote endpoints, timeouts and
// cache policy. It is built once per invocation and injected into the
// fetcher and the category services.
type Settings struct {
	TemplatesRawURL   string
	TemplatesAPIURL   string
	GitignoreAPIURL   string
	GitignoreRawURL   string
	GitHubLicensesURL string
	SPDXListURL       string
	SPDXDetailsURL    string
	ChooseALicenseURL string
	ReleasesURL       string

	UserAgent string
	Timeout   time.Duration

	CacheDir             string
	LicenseCacheMaxAge   time.Duration
	GitignoreCacheMaxAge time.Duration
	// ResponseCacheTTL bounds how long raw template bodies are reused.
	// Zero disables the response cache.
	ResponseCacheTTL time.Duration

	// Workers bounds the fan-out of batch downloads.
	Workers int

	UpdateCheck bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		TemplatesRawURL:   "https://raw.githubusercontent.com/" + branding.GitHubRepo() + "/main/templates",
		TemplatesAPIURL:   "https://api.github.com/repos/" + branding.GitHubRepo() + "/contents/templates",
		GitignoreAPIURL:   "https://api.github.com/repos/github/gitignore/contents",
		GitignoreRawURL:   "https://raw.githubusercontent.com/github/gitignore/main",
		GitHubLicensesURL: "https://api.github.com/licenses",
		SPDXListURL:       "https://raw.githubusercontent.com/spdx/license-list-data/main/json/licenses.json",
		SPDXDetailsURL:    "https://raw.githubusercontent.com/spdx/license-list-data/main/json/details",
		ChooseALicenseURL: "https://raw.githubusercontent.com/github/choosealicense.com/gh-pages/_licenses",
		ReleasesURL:       "https://api.github.com/repos/" + branding.GitHubRepo() + "/releases/latest",

		UserAgent: branding.UserAgent(),
		Timeout:   30 * time.Second,

		CacheDir:             filepath.Join(Dir(), "cache"),
		LicenseCacheMaxAge:   30 * 24 * time.Hour,
		GitignoreCacheMaxAge: 7 * 24 * time.Hour,
		ResponseCacheTTL:     time.Hour,

		Workers:     4,
		UpdateCheck: true,
	}
}

func defaultValues() map[string]any {
	d := Defaults()
	return map[string]any{
		KeyTemplatesRawURL:      d.TemplatesRawURL,
		KeyTemplatesAPIURL:      d.TemplatesAPIURL,
		KeyGitignoreAPIURL:      d.GitignoreAPIURL,
		KeyGitignoreRawURL:      d.GitignoreRawURL,
		KeyGitHubLicensesURL:    d.GitHubLicensesURL,
		KeySPDXListURL:          d.SPDXListURL,
		KeySPDXDetailsURL:       d.SPDXDetailsURL,
		KeyChooseALicenseURL:    d.ChooseALicenseURL,
		KeyReleasesURL:          d.ReleasesURL,
		KeyUserAgent:            d.UserAgent,
		KeyTimeout:              d.Timeout,
		KeyCacheDir:             d.CacheDir,
		KeyLicenseCacheMaxAge:   d.LicenseCacheMaxAge,
		KeyGitignoreCacheMaxAge: d.GitignoreCacheMaxAge,
		KeyResponseCacheTTL:     d.ResponseCacheTTL,
		KeyWorkers:              d.Workers,
		KeyUpdateCheck:          d.UpdateCheck,
	}
}

// Current returns the effective settings: defaults overlaid with the config
// file and GH_TEMPLATES_* environment variables. Load must have been called.
func Current() Settings {
	d := Defaults()
	s := Settings{
		TemplatesRawURL:      viper.GetString(KeyTemplatesRawURL),
		TemplatesAPIURL:      viper.GetString(KeyTemplatesAPIURL),
		GitignoreAPIURL:      viper.GetString(KeyGitignoreAPIURL),
		GitignoreRawURL:      viper.GetString(KeyGitignoreRawURL),
		GitHubLicensesURL:    viper.GetString(KeyGitHubLicensesURL),
		SPDXListURL:          viper.GetString(KeySPDXListURL),
		SPDXDetailsURL:       viper.GetString(KeySPDXDetailsURL),
		ChooseALicenseURL:    viper.GetString(KeyChooseALicenseURL),
		ReleasesURL:          viper.GetString(KeyReleasesURL),
		UserAgent:            viper.GetString(KeyUserAgent),
		Timeout:              viper.GetDuration(KeyTimeout),
		CacheDir:             viper.GetString(KeyCacheDir),
		LicenseCacheMaxAge:   viper.GetDuration(KeyLicenseCacheMaxAge),
		GitignoreCacheMaxAge: viper.GetDuration(KeyGitignoreCacheMaxAge),
		ResponseCacheTTL:     viper.GetDuration(KeyResponseCacheTTL),
		Workers:              viper.GetInt(KeyWorkers),
		UpdateCheck:          viper.GetBool(KeyUpdateCheck),
	}

	// Guard against zero values from malformed overrides.
	if s.Timeout <= 0 {
		s.Timeout = d.Timeout
	}
	if s.Workers <= 0 {
		s.Workers = d.Workers
	}
	if s.UserAgent == "" {
		s.UserAgent = d.UserAgent
	}
	if s.CacheDir == "" {
		s.CacheDir = d.CacheDir
	}
	return s
}
