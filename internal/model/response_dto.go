package model

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormState is returned when a form submission does not redirect.
// Errors holds field-scoped messages; Message is the banner text.
type FormState struct {
	Errors  map[string][]string `json:"errors"`
	Message *string             `json:"message"`
}

// NewFormState builds a FormState; an empty message becomes null
func NewFormState(errors map[string][]string, message string) *FormState {
	state := &FormState{Errors: errors}
	if state.Errors == nil {
		state.Errors = map[string][]string{}
	}
	if message != "" {
		state.Message = &message
	}
	return state
}
