package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Режимы health check upstream CMS
const (
	CheckModeStartup = "startup"
	CheckModeRequest = "request"
)

// YamlConfig — конфигурация сервиса из YAML (поверх неё применяются env)
type YamlConfig struct {
	Host               string `yaml:"host" validate:"required"`
	Port               int    `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeoutSec     int    `yaml:"read_timeout_sec" validate:"min=0"`
	WriteTimeoutSec    int    `yaml:"write_timeout_sec" validate:"min=0"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec" validate:"min=1"`

	Logging struct {
		Level  string `yaml:"level" validate:"required"`
		Format string `yaml:"format" validate:"oneof=json console"`
	} `yaml:"logging"`

	Strapi struct {
		CheckMode string `yaml:"check_mode" validate:"oneof=startup request"`
	} `yaml:"strapi"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	// RequestsPerSec == 0 отключает лимит. TrustedProxies — IP/CIDR прокси,
	// чьему X-Forwarded-For можно верить; пусто — клиент определяется по RemoteAddr.
	RateLimit struct {
		RequestsPerSec float64  `yaml:"requests_per_sec" validate:"min=0"`
		Burst          int      `yaml:"burst" validate:"min=0"`
		TrustedProxies []string `yaml:"trusted_proxies" validate:"dive,ip|cidr"`
	} `yaml:"rate_limit"`

	// Runtime собирается из окружения, в YAML не хранится (там нет места токену)
	Runtime RuntimeConfig `yaml:"-" validate:"-"`
}

// LoadYamlConfig загружает конфигурацию из YAML файла поверх дефолтов
func LoadYamlConfig(path string) (*YamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := GetDefaultYamlConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// loadYamlOrDefault — YAML, если файл есть; иначе дефолты
func loadYamlOrDefault(path string) (*YamlConfig, error) {
	if path == "" {
		return GetDefaultYamlConfig(), nil
	}
	cfg, err := LoadYamlConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return GetDefaultYamlConfig(), nil
	}
	return cfg, err
}

// GetDefaultYamlConfig возвращает конфигурацию по умолчанию
func GetDefaultYamlConfig() *YamlConfig {
	cfg := &YamlConfig{
		Host:               "0.0.0.0",
		Port:               3000,
		ReadTimeoutSec:     30,
		WriteTimeoutSec:    30,
		ShutdownTimeoutSec: 10,
	}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Strapi.CheckMode = CheckModeRequest
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.RateLimit.RequestsPerSec = 10
	cfg.RateLimit.Burst = 20
	cfg.Runtime = Resolve(nil)
	return cfg
}

// Addr — адрес HTTP сервера
func (c *YamlConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *YamlConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSec) * time.Second
}

func (c *YamlConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSec) * time.Second
}

func (c *YamlConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}
