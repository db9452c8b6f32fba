package dto

// ErrorResponse standard error payload.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
