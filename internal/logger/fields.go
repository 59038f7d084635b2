package logger

// Fields is a shorthand for structured log fields.
type Fields map[string]interface{}

// Tracing fields carried on the context logger through a request.
const (
	FieldRequestID = "request_id"
	FieldSessionID = "session_id"
	FieldComponent = "component"
	FieldPlatform  = "platform"
	FieldProvider  = "provider"
	FieldModel     = "model"
)

// Metric fields attached per entry for aggregation.
const (
	FieldDurationMs = "duration_ms"
	FieldCount      = "count"
	FieldStatus     = "status"
	FieldHTTPStatus = "http_status"
	FieldSize       = "size"
)
