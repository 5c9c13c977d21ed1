package errors

const (
	HttpInternalError  = "internal_error"
	HttpReportNotReady = "report_not_ready"
)

// ErrorResponse is the error response body for metrics API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
