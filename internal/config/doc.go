// Package config loads, validates, and live-reloads editor settings.
//
// Settings live in a TOML or YAML file; the format is chosen by file
// extension. A missing file yields the defaults, so a fresh install
// works without any configuration. The Watcher reloads the file when
// it changes on disk, debouncing rapid writes, and notifies
// subscribers with the freshly parsed configuration.
package config
