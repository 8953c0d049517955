package constants

// ServiceName — имя сервиса в health и логах
const ServiceName = "blog-platform"

// BasePathAPI — базовый путь публичного API
const BasePathAPI = "/api/v1"

// Health
const (
	PathHealth = "/health"
	PathReady  = "/ready"
)

// Относительно BasePathAPI
const (
	PathConfig = "/config"
	PathHead   = "/head"
)

// Swagger
const (
	PathSwagger = "/swagger"
	PathOpenAPI = "/openapi.json"
)
