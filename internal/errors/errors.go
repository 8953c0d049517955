package errors

import "errors"

// Доменные ошибки. ErrUpstreamIncomplete никогда не возвращается клиенту:
// health check только логирует её как предупреждение.
var (
	ErrUpstreamIncomplete = errors.New("strapi api configuration is incomplete")
	ErrInvalidConfig      = errors.New("invalid config")
)
