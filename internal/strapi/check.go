// Package strapi проверяет, что настроек достаточно для обращения к Strapi.
// Проверка только советует: она пишет предупреждение в лог и никогда не
// блокирует обработку запросов.
package strapi

import (
	"go.uber.org/zap"

	"github.com/psds-microservice/blog-platform/internal/config"
	apperrors "github.com/psds-microservice/blog-platform/internal/errors"
)

// MissingConfigMessage — текст предупреждения о неполной конфигурации
const MissingConfigMessage = "Strapi API configuration is incomplete. Make sure to set " +
	config.EnvStrapiAPIURL + " and " + config.EnvStrapiAPIToken + " environment variables."

// Статусы для readiness
const (
	StatusConfigured = "configured"
	StatusIncomplete = "incomplete"
)

// Missing возвращает имена незаданных переменных окружения
func Missing(rc config.RuntimeConfig) []string {
	var missing []string
	if rc.UpstreamBaseURL() == "" {
		missing = append(missing, config.EnvStrapiAPIURL)
	}
	if rc.UpstreamAPIToken() == "" {
		missing = append(missing, config.EnvStrapiAPIToken)
	}
	return missing
}

// Incomplete — пуст базовый адрес или токен
func Incomplete(rc config.RuntimeConfig) bool {
	return len(Missing(rc)) > 0
}

// Status — строковый статус для /ready
func Status(rc config.RuntimeConfig) string {
	if Incomplete(rc) {
		return StatusIncomplete
	}
	return StatusConfigured
}

// Check пишет ровно одно предупреждение, если конфиг неполный, и ничего иначе.
// Возвращает true, если с конфигом можно ходить в Strapi. Состояния не хранит,
// поэтому может вызываться на каждый запрос. nil logger заменяется на Nop.
func Check(logger *zap.Logger, rc config.RuntimeConfig) bool {
	missing := Missing(rc)
	if len(missing) == 0 {
		return true
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Warn(MissingConfigMessage,
		zap.Strings("missing", missing),
		zap.Error(apperrors.ErrUpstreamIncomplete))
	return false
}
