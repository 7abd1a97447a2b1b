package dto

// ErrorResponse is the uniform error envelope. Stack is populated only
// outside production.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Stack   string   `json:"stack,omitempty"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message string, errs ...string) *ErrorResponse {
	if errs == nil {
		errs = []string{}
	}
	return &ErrorResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

// WithStack attaches debug detail to the response
func (e *ErrorResponse) WithStack(stack string) *ErrorResponse {
	e.Stack = stack
	return e
}
