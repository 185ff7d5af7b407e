package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldEntryID    = "entry_id"
	FieldKind       = "kind"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldMonth      = "month"
	FieldStartMonth = "start_month"
	FieldEndMonth   = "end_month"
	FieldRemoved    = "removed"
	FieldDBPath     = "db_path"
	FieldFormat     = "format"
	FieldRows       = "rows"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentCLI        = "cli"
	ComponentHTTP       = "http"
	ComponentStorage    = "storage"
	ComponentEntries    = "entries"
	ComponentAggregator = "aggregator"
	ComponentExport     = "export"
)

// Operations defines standard operation names
const (
	OpAdd       = "add"
	OpList      = "list"
	OpDelete    = "delete"
	OpSummary   = "summary"
	OpTotals    = "category_totals"
	OpExport    = "export"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
	OpInitStore = "init_store"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithEntry adds the business fields of a ledger entry.
func (f LogFields) WithEntry(id int64, kind string, amount int64, category string) LogFields {
	if id > 0 {
		f[FieldEntryID] = id
	}
	f[FieldKind] = kind
	f[FieldAmount] = amount
	f[FieldCategory] = category
	return f
}

// WithRange adds the month bounds of a period query.
func (f LogFields) WithRange(start, end string) LogFields {
	f[FieldStartMonth] = start
	f[FieldEndMonth] = end
	return f
}

// WithHTTP adds request and response fields.
func (f LogFields) WithHTTP(method, path string, statusCode int, durationMs int64) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
