// Package config manages user-level settings stored at ~/.gh-templates/config.yaml.
// It exposes the consolidated Settings (remote endpoints, request timeout,
// cache directory and ages, worker count) that every other package receives
// by injection, plus raw Get/Set for the `config` command.
package config
