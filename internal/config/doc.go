// Package config handles loading and parsing the tally configuration file.
//
// # Overview
//
// The config file lives at ~/.config/tally/config.toml and carries the
// connection settings for the two external collaborators (the Postgres store
// and the realtime feed endpoint) plus filesystem locations for logs and the
// session file.
//
// # Keys
//
//	database_url = "postgres://localhost:5432/tally"
//	feed_url     = "ws://127.0.0.1:8484/feed"
//	log_dir      = "~/.local/share/tally/logs"
//	session_path = "~/.config/tally/session.toml"
//
// # Behavior
//
//   - A missing file falls back to defaults; tally works out of the box
//     against a local database.
//   - Malformed TOML is a hard error at startup.
//   - Empty or whitespace values use the defaults; paths expand a leading ~.
//
// Credentials are part of database_url; this package treats the value as
// opaque and hands it to the pool unchanged.
package config
