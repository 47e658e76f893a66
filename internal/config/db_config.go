package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type dbDriver string

const (
	DriverSqlite   dbDriver = "sqlite"
	DriverPostgres dbDriver = "postgres"
)

type DBConfig struct {
	Driver           dbDriver `mapstructure:"driver"`
	ConnectionString string   `mapstructure:"connection_string"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.Driver != DriverSqlite && config.Driver != DriverPostgres {
		return fmt.Errorf("unsupported db driver: %q", config.Driver)
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("db.driver", "DB_DRIVER"); err != nil {
		return err
	}
	return v.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}
