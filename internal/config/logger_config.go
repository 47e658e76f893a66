package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelDebug   LogLevel = "DEBUG"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
	LevelFatal   LogLevel = "FATAL"
)

var logLevels = []LogLevel{LevelInfo, LevelDebug, LevelWarning, LevelError, LevelFatal}

// LoggerConfig controls the process log. Loki shipping is enabled by loki_url;
// the file log is always written.
type LoggerConfig struct {
	LogLevel     LogLevel `mapstructure:"log_level"`
	AppName      string   `mapstructure:"app_name"`
	LokiURL      string   `mapstructure:"loki_url"`
	LokiUser     string   `mapstructure:"loki_user"`
	LokiPassword string   `mapstructure:"loki_password"`
	OutputFile   string   `mapstructure:"output_file"`
}

func (config LoggerConfig) validate() error {
	var errs []error

	if !lo.Contains(logLevels, config.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log_level %q, expected one of %v", config.LogLevel, logLevels))
	}

	switch {
	case strings.TrimSpace(config.OutputFile) == "":
		errs = append(errs, fmt.Errorf("missing variable: output_file"))
	case strings.HasSuffix(config.OutputFile, "/"), filepath.Base(config.OutputFile) == ".":
		errs = append(errs, fmt.Errorf("output_file %q must name a file, not a directory", config.OutputFile))
	}

	if config.LokiURL != "" {
		if u, err := url.Parse(config.LokiURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid loki_url %q", config.LokiURL))
		}
		if config.AppName == "" {
			errs = append(errs, fmt.Errorf("missing variable: app_name (required as loki label)"))
		}
	} else if config.LokiUser != "" || config.LokiPassword != "" {
		errs = append(errs, fmt.Errorf("loki credentials set without loki_url"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("logger config: %w", errors.Join(errs...))
	}

	return nil
}

func (config LoggerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	bindings := map[string]string{
		"logger.loki_url":      "LOKI_URL",
		"logger.loki_user":     "LOKI_USER",
		"logger.loki_password": "LOKI_PASSWORD",
		"logger.app_name":      "APP_NAME",
		"logger.log_level":     "LOG_LEVEL",
		"logger.output_file":   "LOG_OUTPUT_FILE",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}
