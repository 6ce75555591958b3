package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/worklog/internal/constants"
	"github.com/mrz1836/worklog/internal/errors"
)

// newViperInstance creates a Viper instance with the WORKLOG_ env prefix,
// dotted keys mapped to underscores, and every default registered.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers every key. Keys must match the mapstructure tags;
// AutomaticEnv only resolves keys viper already knows about.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.lock_timeout", d.Store.LockTimeout.String())

	v.SetDefault("prompt.max_retries", d.Prompt.MaxRetries)
	v.SetDefault("prompt.clear_screen", d.Prompt.ClearScreen)

	v.SetDefault("search.pattern_timeout", d.Search.PatternTimeout.String())
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from the global and project config files and
// the environment. Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		// No home directory: run on defaults and env only.
		globalPath = ""
	}
	return LoadFromPaths(ctx, ProjectConfigPath(), globalPath)
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero override values are applied.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}
	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty, or name a missing file, to skip that level.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if err := mergeConfigFile(v, globalConfigPath); err != nil {
		return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, err.Error())
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("store.path", cfg.Store.Path).
		Dur("store.lock_timeout", cfg.Store.LockTimeout).
		Int("prompt.max_retries", cfg.Prompt.MaxRetries).
		Dur("search.pattern_timeout", cfg.Search.PatternTimeout).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// mergeConfigFile merges the YAML file at path over v. Empty paths and
// missing files are skipped.
func mergeConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr // a missing config layer is skipped
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return err
	}
	return nil
}

// applyOverrides merges non-zero override values into the config.
//
// ClearScreen is a bool and cannot be overridden to false here; the CLI
// sets it directly when its flag was changed.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Store.Path != "" {
		cfg.Store.Path = overrides.Store.Path
	}
	if overrides.Store.LockTimeout != 0 {
		cfg.Store.LockTimeout = overrides.Store.LockTimeout
	}
	if overrides.Prompt.MaxRetries != 0 {
		cfg.Prompt.MaxRetries = overrides.Prompt.MaxRetries
	}
	if overrides.Search.PatternTimeout != 0 {
		cfg.Search.PatternTimeout = overrides.Search.PatternTimeout
	}
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
