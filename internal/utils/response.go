package utils

import (
	"encoding/json"
	"net/http"

	"github.com/devrahulm/vidtube-server/internal/logger"
	"github.com/devrahulm/vidtube-server/internal/services"
)

type Payload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSONResponse sends a JSON response with given status, success flag, and payload
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// JSONError maps a service error kind to its status code and writes the
// uniform failure envelope. Unknown errors are reported as 500 without
// leaking their message.
func JSONError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch services.KindOf(err) {
	case services.KindValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case services.KindUnauthorized:
		status = http.StatusUnauthorized
		message = err.Error()
	case services.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case services.KindConflict:
		status = http.StatusConflict
		message = err.Error()
	case services.KindInternal:
		message = err.Error()
		logger.Error("internal error", logger.ErrorField(err))
	default:
		logger.Error("unclassified error", logger.ErrorField(err))
	}

	JSONResponse(w, status, Payload{Success: false, Message: message})
}
