package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/psds-microservice/blog-platform/internal/errors"
)

// Config — алиас для YamlConfig
type Config = YamlConfig

var validate = validator.New()

// LoadConfig загружает конфигурацию: YAML (если файл есть), затем переопределения из env,
// затем runtime-конфиг Strapi из окружения. Отсутствие файла — не ошибка.
func LoadConfig(path string) (*Config, error) {
	cfg, err := loadYamlOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	cfg.Runtime = ResolveFromOS()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetDefaultConfig возвращает конфигурацию по умолчанию
func GetDefaultConfig() *Config {
	return GetDefaultYamlConfig()
}

// Validate проверяет параметры сервиса. Runtime-конфиг не проверяется:
// его неполнота только логируется health check'ом.
func (c *YamlConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	return nil
}
