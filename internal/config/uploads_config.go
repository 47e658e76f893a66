package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type UploadsConfig struct {
	Dir string `mapstructure:"dir"`
	// AllowedExtensions is advertised to browsers only; uploads are not filtered by it.
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

// AcceptAttribute renders the extensions as an html "accept" value, e.g. ".png,.jpg".
func (config UploadsConfig) AcceptAttribute() string {
	return strings.Join(lo.Map(config.AllowedExtensions, func(ext string, _ int) string {
		return "." + strings.TrimPrefix(strings.ToLower(ext), ".")
	}), ",")
}

func (config UploadsConfig) validate() error {
	if config.Dir == "" {
		return fmt.Errorf("missing variable: dir")
	}
	return nil
}
