package utils

import (
	"crypto/rand"
	"encoding/hex"
)

const RequestIDHeader = "X-Request-ID"

// NewRequestID returns a random 16-character hex id for correlating log lines.
func NewRequestID() string {
	buffer := make([]byte, 8)
	if _, err := rand.Read(buffer); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(buffer)
}
