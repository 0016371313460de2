package dto

import "time"

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Path       string    `json:"path"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewErrorResponse(status int, message, path string) ErrorResponse {
	return ErrorResponse{
		StatusCode: status,
		Message:    message,
		Path:       path,
		Timestamp:  time.Now().UTC(),
	}
}
