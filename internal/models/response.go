package models

// DataResponse is the success envelope of every endpoint
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse is the failure envelope of every endpoint
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure; Errors holds field-level validation messages
type ErrorBody struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// MessageResponse is a plain confirmation payload
type MessageResponse struct {
	Message string `json:"message"`
}
