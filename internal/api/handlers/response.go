// Package handlers общие помощники HTTP ответов. Тело ошибки всегда {"detail": "..."}
package handlers

import (
	"encoding/json"
	"net/http"
)

const (
	maxJSONBodyBytes = 1 << 20

	MsgInternalError      = "Internal server error"
	MsgStorageUnavailable = "Booking storage unavailable"
	MsgStorageTimeout     = "Booking storage timeout"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse тело ответа с текстовым результатом
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondJSON(w, status, ErrorResponse{Detail: detail})
}

func RespondMessage(w http.ResponseWriter, message string, data interface{}) {
	RespondJSON(w, http.StatusOK, MessageResponse{Message: message, Data: data})
}

func RespondNotFound(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusNotFound, detail)
}

func RespondUnprocessable(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusUnprocessableEntity, detail)
}

func RespondConflict(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusConflict, detail)
}

func RespondBadGateway(w http.ResponseWriter) {
	RespondError(w, http.StatusBadGateway, MsgStorageUnavailable)
}

func RespondGatewayTimeout(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, MsgStorageTimeout)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, MsgInternalError)
}

// DecodeJSON читает тело запроса в target. Размер тела ограничен
func DecodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}
