package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (config ServerConfig) Address() string {
	return fmt.Sprintf(":%d", config.Port)
}

func (config ServerConfig) validate() error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d", config.Port)
	}
	switch config.Mode {
	case "debug", "release", "test":
		return nil
	default:
		return fmt.Errorf("invalid server mode: %q", config.Mode)
	}
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("server.port", "PORT"); err != nil {
		return err
	}
	return v.BindEnv("server.mode", "MODE")
}
