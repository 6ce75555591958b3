package config

import "github.com/mrz1836/worklog/internal/constants"

// DefaultConfig returns a new Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path:        constants.WorkLogFileName,
			LockTimeout: constants.DefaultLockTimeout,
		},
		Prompt: PromptConfig{
			MaxRetries:  constants.DefaultMaxRetries,
			ClearScreen: true,
		},
		Search: SearchConfig{
			PatternTimeout: constants.DefaultPatternTimeout,
		},
	}
}
