package constants

// HTTP методы
const (
	MethodGet     = "GET"
	MethodOptions = "OPTIONS"
)

// Заголовки
const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
)

const (
	ContentTypeJSON = "application/json"
)
