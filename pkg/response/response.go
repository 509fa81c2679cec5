// Package response holds the JSON writing helpers shared by all handlers.
// The notes API exposes a few different body shapes, so the helpers mirror
// them rather than forcing one envelope.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the {success, message, data} shape used by the mutating
// endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON writes v as-is with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// OK writes {"success":true,"message":...,"data":...}.
func OK(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes {"success":false,"message":...}.
func Fail(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, Envelope{Success: false, Message: message})
}

// Message writes {"message":...}.
func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"message": message})
}

// Err writes {"error":...}.
func Err(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"error": message})
}
