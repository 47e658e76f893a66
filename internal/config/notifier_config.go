package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type NotifierConfig struct {
	TelegramToken        string  `mapstructure:"telegram_token"`
	ChatID               int64   `mapstructure:"chat_id"`
	MaxMessagesPerSecond float32 `mapstructure:"max_messages_per_second"`
}

func (config NotifierConfig) Enabled() bool {
	return config.TelegramToken != ""
}

func (config NotifierConfig) validate() error {
	if !config.Enabled() {
		return nil
	}
	if config.ChatID == 0 {
		return fmt.Errorf("missing variable: chat_id")
	}
	if config.MaxMessagesPerSecond <= 0 {
		return fmt.Errorf("max_messages_per_second must be positive")
	}
	return nil
}

func (config NotifierConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("notifier.telegram_token", "TELEGRAM_TOKEN"); err != nil {
		return err
	}
	return v.BindEnv("notifier.chat_id", "TELEGRAM_CHAT_ID")
}
