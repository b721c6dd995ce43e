// Package config loads postdeck's startup configuration.
//
// # Overview
//
// Configuration comes from a TOML file, optionally preceded by a .env file,
// and a small set of environment overrides. Every key is optional; a missing
// file yields Default().
//
// # Resolution Order
//
//  1. LoadDotEnv copies .env entries into the environment (existing
//     variables win)
//  2. Load reads the explicit path, or ~/.config/postdeck/config.toml
//  3. Empty or zero values in the file keep their defaults
//  4. POSTDECK_API_URL and POSTDECK_LOG_LEVEL override the file
//
// Command-line flags are applied by the caller after Load.
//
// # Keys
//
//	api_url          = "https://jsonplaceholder.typicode.com"
//	page_size        = 10
//	request_timeout  = "10s"
//	rate_limit       = 0      # requests per second, 0 = unlimited
//	rate_burst       = 1
//	refresh_interval = "0s"   # 0 = no auto-reload
//	log_file         = "~/.local/state/postdeck/postdeck.log"
//	log_level        = "info"
//
// Paths starting with ~ are expanded and made absolute.
//
// # Error Handling
//
// Load fails on unreadable files, invalid TOML and malformed or negative
// durations. A missing file is not an error.
package config
