// Package api contains the uniform response envelope returned by every
// business endpoint.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the body of every business response. Failures still answer
// with HTTP 200; only the auth middlewares use HTTP status codes.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteSuccess writes a successful envelope with the given data and message.
func WriteSuccess(w http.ResponseWriter, data interface{}, message string) {
	_ = json.NewEncoder(w).Encode(Envelope{Success: true, Message: message, Data: data})
}

// WriteFailure writes a failed envelope carrying the given message.
func WriteFailure(w http.ResponseWriter, message string) {
	_ = json.NewEncoder(w).Encode(Envelope{Success: false, Message: message})
}

// FailureMessage builds the failure message for an action, keeping the
// action's own language in front of the underlying cause.
func FailureMessage(action string, err error) string {
	return fmt.Sprintf("%s: %v", action, err)
}
