package utils

import "github.com/google/uuid"

const (
	// RequestIDHeader carries the request id in and out of the service.
	RequestIDHeader = "X-Request-Id"
	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey = "requestID"
)

// NewRequestID returns a random request identifier.
func NewRequestID() string {
	return uuid.NewString()
}
