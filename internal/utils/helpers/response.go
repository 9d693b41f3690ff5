package helpers

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Data   interface{}       `json:"data,omitempty"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Data: data})
	if err != nil {
		return
	}
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Error: errMsg})
	if err != nil {
		return
	}
}

// FieldErrors reports a validation failure with the offending fields.
func FieldErrors(w http.ResponseWriter, status int, errMsg string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Error: errMsg, Fields: fields})
	if err != nil {
		return
	}
}
