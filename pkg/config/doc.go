// Package config loads and writes the syncd configuration file.
//
// Configuration is layered with koanf: built-in defaults, then config.toml
// from the syncd config directory, then SYNCD_* environment variables
// (SYNCD_REPO_URL, SYNCD_REPO_BRANCH, SYNCD_RESTORE_RELOAD_COMMAND). Writing
// normalizes the selection and encodes it with go-toml.
package config
