package log

// Field names shared across components. One-off attributes stay string
// literals at the call site; these are the keys that must stay greppable
// across subsystems.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldUserAgent  = "user_agent"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldAction     = "action"
	FieldReceiptID  = "receipt_id"
)

// Component names, one per subsystem that logs.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentAPI     = "api"
	ComponentService = "service"
	ComponentAudit   = "audit"
	ComponentAMQP    = "amqp"
	ComponentCache   = "cache"
)
