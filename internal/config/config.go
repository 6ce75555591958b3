// Package config provides configuration management for worklog with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (WORKLOG_* prefix)
//  3. Project config (.worklog/config.yaml)
//  4. Global config (~/.worklog/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for worklog.
type Config struct {
	// Store contains settings for the CSV work log.
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Prompt contains settings for the interactive prompts.
	Prompt PromptConfig `yaml:"prompt" mapstructure:"prompt"`

	// Search contains settings for the search filters.
	Search SearchConfig `yaml:"search" mapstructure:"search"`
}

// StoreConfig contains settings for the work log file.
type StoreConfig struct {
	// Path is the CSV file. Relative paths resolve against the working directory.
	// Default: "work_log.csv"
	Path string `yaml:"path" mapstructure:"path"`

	// LockTimeout is how long an operation waits for the file lock.
	// Default: 5s
	LockTimeout time.Duration `yaml:"lock_timeout" mapstructure:"lock_timeout"`
}

// PromptConfig contains settings for the menu and its prompts.
type PromptConfig struct {
	// MaxRetries is how many invalid answers a prompt accepts before the
	// session ends. Must be between 1 and 100.
	// Default: 5
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	// ClearScreen clears the terminal before each menu.
	// Default: true
	ClearScreen bool `yaml:"clear_screen" mapstructure:"clear_screen"`
}

// SearchConfig contains settings for searching the log.
type SearchConfig struct {
	// PatternTimeout bounds one regular expression match.
	// Default: 2s
	PatternTimeout time.Duration `yaml:"pattern_timeout" mapstructure:"pattern_timeout"`
}
