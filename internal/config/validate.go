package config

import (
	"strings"

	"github.com/mrz1836/worklog/internal/constants"
	"github.com/mrz1836/worklog/internal/errors"
)

// Validate checks the configuration for invalid values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - store.path must not be blank
//   - store.lock_timeout must be positive
//   - prompt.max_retries must be between 1 and 100
//   - search.pattern_timeout must not be negative (zero disables the limit)
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if strings.TrimSpace(cfg.Store.Path) == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "store.path must not be empty")
	}
	if cfg.Store.LockTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"store.lock_timeout must be positive, got %s", cfg.Store.LockTimeout)
	}

	if cfg.Prompt.MaxRetries < 1 || cfg.Prompt.MaxRetries > constants.MaxRetriesLimit {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"prompt.max_retries must be between 1 and %d, got %d", constants.MaxRetriesLimit, cfg.Prompt.MaxRetries)
	}

	if cfg.Search.PatternTimeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"search.pattern_timeout must not be negative, got %s", cfg.Search.PatternTimeout)
	}

	return nil
}
