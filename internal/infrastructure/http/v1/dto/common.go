// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// ListResponse wraps list results.
type ListResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// ErrorResponse documents the error body shape produced by the error
// handler middleware.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
