package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Notifier NotifierConfig `mapstructure:"notifier"`
}

var configFile = "./configs/config.yaml"

// Get loads the configuration or terminates the process.
func Get() *Config {

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("can't load .env file: %v", err)
	}

	file := configFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}

	config, err := Load(file)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

// Load reads the yaml file (if present) and applies defaults and environment overrides.
func Load(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	setDefaults(v)

	err := bindEnvironmentVariables(v)
	if err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
		log.Warnf("config file %s not found, using defaults", file)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.app_name", "amco-vacancies")
	v.SetDefault("logger.output_file", "./logs/app.log")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("db.driver", string(DriverSqlite))
	v.SetDefault("db.connection_string", "amco.db")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin")
	v.SetDefault("admin.require_login", false)
	v.SetDefault("admin.session_ttl", "24h")

	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.allowed_extensions", []string{"png", "jpg", "jpeg", "gif"})

	v.SetDefault("notifier.max_messages_per_second", 1)
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	logger, server, db := LoggerConfig{}, ServerConfig{}, DBConfig{}
	admin, notifier := AdminConfig{}, NotifierConfig{}

	if err := logger.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := server.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := admin.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("AdminConfig: %w", err))
	}

	if err := notifier.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("NotifierConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Server.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Admin.validate(); err != nil {
		errs = append(errs, fmt.Errorf("AdminConfig: %w", err))
	}

	if err := config.Uploads.validate(); err != nil {
		errs = append(errs, fmt.Errorf("UploadsConfig: %w", err))
	}

	if err := config.Notifier.validate(); err != nil {
		errs = append(errs, fmt.Errorf("NotifierConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
