package shared

import (
	"encoding/json"
	"net/http"

	"github.com/f1catchup/f1catchup/internal/logger"
)

var log = logger.Scoped("shared")

func IsMethod(r *http.Request, method string) bool {
	return r.Method == method
}

func SetCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "*")
}

func SendResponse(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	SetCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode json", "path", r.URL.Path, "error", err)
	}
}

func SendText(w http.ResponseWriter, r *http.Request, statusCode int, contentType string, body []byte) {
	SetCORSHeaders(w)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Error("failed to write response", "path", r.URL.Path, "error", err)
	}
}
