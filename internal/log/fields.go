package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldInvoiceID     = "invoice_id"
	FieldCustomerID    = "customer_id"
	FieldAmountCents   = "amount_cents"
	FieldInvoiceStatus = "invoice_status"
	FieldPage          = "page"
	FieldSearchQuery   = "search_query"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStorage  = "storage"
	ComponentInvoice  = "invoice"
	ComponentCustomer = "customer"
	ComponentAMQP     = "amqp"
	ComponentCache    = "cache"
	ComponentTemplate = "template"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpValidate = "validate"
	OpRender   = "render"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
