package cloudapi

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured = errors.New("NOT_CONFIGURED")
	ErrTimeout       = errors.New("TIMEOUT")
	ErrNetwork       = errors.New("NETWORK_ERROR")
	ErrBadResponse   = errors.New("BAD_RESPONSE")
)

// APIError is the Graph-style error envelope returned by the Cloud API.
type APIError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
	}
	return e.Message
}
