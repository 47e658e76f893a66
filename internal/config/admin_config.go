package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// RequireLogin turns on the session check for the admin pages. Off by default.
	RequireLogin bool          `mapstructure:"require_login"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
}

func (config AdminConfig) validate() error {
	var errs []error

	if config.Username == "" {
		errs = append(errs, fmt.Errorf("missing variable: username"))
	}
	if config.Password == "" {
		errs = append(errs, fmt.Errorf("missing variable: password"))
	}
	if config.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}
	return nil
}

func (config AdminConfig) bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error
	if err := v.BindEnv("admin.username", "ADMIN_USERNAME"); err != nil {
		errs = append(errs, err)
	}
	if err := v.BindEnv("admin.password", "ADMIN_PASSWORD"); err != nil {
		errs = append(errs, err)
	}
	if err := v.BindEnv("admin.require_login", "ADMIN_REQUIRE_LOGIN"); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
