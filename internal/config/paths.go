package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/worklog/internal/constants"
	"github.com/mrz1836/worklog/internal/errors"
)

// GlobalConfigDir returns the worklog home directory: $WORKLOG_HOME when set,
// otherwise ~/.worklog.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	if dir := os.Getenv(constants.HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.WorklogHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
// This is always .worklog/config.yaml relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.WorklogHome, constants.ConfigFileName)
}
