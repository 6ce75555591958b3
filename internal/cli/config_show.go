package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/worklog/internal/config"
	"github.com/mrz1836/worklog/internal/constants"
	"github.com/mrz1836/worklog/internal/tui"
)

// AddConfigShowCommand adds the show subcommand to the config command.
func AddConfigShowCommand(configCmd *cobra.Command, flags *GlobalFlags) {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective worklog configuration and where each value comes from:
  - default: Built-in default value
  - global:  From ~/.worklog/config.yaml (or $WORKLOG_HOME/config.yaml)
  - project: From .worklog/config.yaml
  - env:     From a WORKLOG_* environment variable
  - flag:    From a command-line flag

Examples:
  worklog config show              # YAML with sources
  worklog config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	})
}

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from global config.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from project config.
	SourceProject ConfigSource = "project"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceFlag indicates the value came from a command-line flag.
	SourceFlag ConfigSource = "flag"
)

// ConfigValueWithSource represents a configuration value with its source.
type ConfigValueWithSource struct {
	Value  any          `json:"value" yaml:"value"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// AnnotatedConfig is the configuration with a source per key.
type AnnotatedConfig struct {
	Store  map[string]ConfigValueWithSource `json:"store" yaml:"store"`
	Prompt map[string]ConfigValueWithSource `json:"prompt" yaml:"prompt"`
	Search map[string]ConfigValueWithSource `json:"search" yaml:"search"`
}

func runConfigShow(ctx context.Context, w io.Writer, flags *GlobalFlags) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cfg, err := loadConfig(ctx, flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	sources := newSourceResolver(flags)
	annotated := AnnotatedConfig{
		Store: map[string]ConfigValueWithSource{
			"path":         sources.annotate("store.path", cfg.Store.Path),
			"lock_timeout": sources.annotate("store.lock_timeout", cfg.Store.LockTimeout.String()),
		},
		Prompt: map[string]ConfigValueWithSource{
			"max_retries":  sources.annotate("prompt.max_retries", cfg.Prompt.MaxRetries),
			"clear_screen": sources.annotate("prompt.clear_screen", cfg.Prompt.ClearScreen),
		},
		Search: map[string]ConfigValueWithSource{
			"pattern_timeout": sources.annotate("search.pattern_timeout", cfg.Search.PatternTimeout.String()),
		},
	}

	if flags.Output == OutputJSON {
		return tui.NewJSONOutput(w).JSON(annotated)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(annotated); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// sourceResolver finds the highest-precedence layer that sets a key.
type sourceResolver struct {
	flags   *GlobalFlags
	global  map[string]any
	project map[string]any
}

func newSourceResolver(flags *GlobalFlags) *sourceResolver {
	r := &sourceResolver{flags: flags}
	if path, err := config.GlobalConfigPath(); err == nil {
		r.global = readYAMLMap(path)
	}
	r.project = readYAMLMap(config.ProjectConfigPath())
	return r
}

func (r *sourceResolver) annotate(key string, value any) ConfigValueWithSource {
	return ConfigValueWithSource{Value: value, Source: r.source(key)}
}

func (r *sourceResolver) source(key string) ConfigSource {
	switch {
	case key == "store.path" && r.flags.File != "":
		return SourceFlag
	case envSet(key):
		return SourceEnv
	case hasKey(r.project, key):
		return SourceProject
	case hasKey(r.global, key):
		return SourceGlobal
	default:
		return SourceDefault
	}
}

// envSet reports whether the WORKLOG_ variable for a dotted key is set.
func envSet(key string) bool {
	name := constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	_, ok := os.LookupEnv(name)
	return ok
}

// readYAMLMap reads a config file; missing or malformed files yield nil.
func readYAMLMap(path string) map[string]any {
	data, err := os.ReadFile(path) //nolint:gosec // config path is fixed, not user input
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// hasKey reports whether a dotted key is present in a nested YAML map.
func hasKey(m map[string]any, key string) bool {
	section, field, ok := strings.Cut(key, ".")
	if !ok || m == nil {
		return false
	}
	inner, ok := m[section].(map[string]any)
	if !ok {
		return false
	}
	_, ok = inner[field]
	return ok
}
