package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/psds-microservice/blog-platform/internal/errors"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// lookupEnvInt: ok=false, если переменная не задана; ошибка, если задана не числом
func lookupEnvInt(key string) (int, bool, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("%s=%q: not an integer", key, s)
	}
	return v, true, nil
}

func lookupEnvFloat(key string) (float64, bool, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s=%q: not a number", key, s)
	}
	return v, true, nil
}

func getEnvList(key string) []string {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ApplyEnvOverrides применяет переменные окружения поверх конфига (env переопределяет YAML).
// Нечисловые значения не применяются и возвращаются ошибкой; остальные переопределения
// при этом всё равно применены.
func ApplyEnvOverrides(cfg *YamlConfig) error {
	var errs []error

	if v := getEnv("HOST", ""); v != "" {
		cfg.Host = v
	}

	// HTTP_PORT, затем PORT: берётся первый корректный
	var portErrs []error
	for _, key := range []string{"HTTP_PORT", "PORT"} {
		p, ok, err := lookupEnvInt(key)
		if err != nil {
			portErrs = append(portErrs, err)
			continue
		}
		if ok {
			cfg.Port = p
			portErrs = nil
			break
		}
	}
	errs = append(errs, portErrs...)

	if v := getEnv("LOG_LEVEL", ""); v != "" {
		cfg.Logging.Level = v
	}
	if v := getEnv("LOG_FORMAT", ""); v != "" {
		cfg.Logging.Format = v
	}

	if v := getEnv("STRAPI_CHECK_MODE", ""); v != "" {
		cfg.Strapi.CheckMode = strings.ToLower(v)
	}

	if f, ok, err := lookupEnvFloat("RATE_LIMIT_RPS"); err != nil {
		errs = append(errs, err)
	} else if ok {
		cfg.RateLimit.RequestsPerSec = f
	}
	if p, ok, err := lookupEnvInt("RATE_LIMIT_BURST"); err != nil {
		errs = append(errs, err)
	} else if ok {
		cfg.RateLimit.Burst = p
	}
	if proxies := getEnvList("RATE_LIMIT_TRUSTED_PROXIES"); len(proxies) > 0 {
		cfg.RateLimit.TrustedProxies = proxies
	}

	if origins := getEnvList("CORS_ALLOWED_ORIGINS"); len(origins) > 0 {
		cfg.CORS.AllowedOrigins = origins
	}

	return errors.Join(errs...)
}

// LoadConfigFromEnv собирает конфиг только из переменных окружения (для работы без YAML).
// Конфиг возвращается и при ошибке разбора env: в нём остаются дефолты для таких полей.
func LoadConfigFromEnv() (*YamlConfig, error) {
	cfg := GetDefaultYamlConfig()
	err := ApplyEnvOverrides(cfg)
	cfg.Runtime = ResolveFromOS()
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	return cfg, nil
}
