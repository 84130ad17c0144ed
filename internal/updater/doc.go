// Package updater checks GitHub Releases for a newer version of the CLI.
// The result is kept in a cache slot for a day and powers a one-line notice
// printed at startup; the slot is refreshed in the background when stale.
package updater
