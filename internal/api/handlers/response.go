package handlers

import (
	"encoding/json"
	"net/http"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errorCodes = map[int]string{
	http.StatusBadRequest:          "INVALID_INPUT",
	http.StatusUnauthorized:        "UNAUTHORIZED",
	http.StatusForbidden:           "ACCESS_DENIED",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusConflict:            "CONFLICT",
	http.StatusServiceUnavailable:  "STORAGE_UNAVAILABLE",
	http.StatusInternalServerError: "INTERNAL_ERROR",
}

// RespondJSON отправляет JSON ответ
// При body == nil тело не пишется
func RespondJSON(w http.ResponseWriter, status int, body interface{}) {
	if body == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RespondError отправляет ошибку с кодом, выведенным из HTTP статуса
func RespondError(w http.ResponseWriter, status int, message string) {
	code, ok := errorCodes[status]
	if !ok {
		code = http.StatusText(status)
	}
	RespondErrorCode(w, status, code, message)
}

// RespondErrorCode отправляет ошибку с явным кодом
func RespondErrorCode(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondInvalidTemplate 400 с кодом INVALID_TEMPLATE
func RespondInvalidTemplate(w http.ResponseWriter, message string) {
	RespondErrorCode(w, http.StatusBadRequest, "INVALID_TEMPLATE", message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondSlotUnavailable 409 с кодом SLOT_UNAVAILABLE
func RespondSlotUnavailable(w http.ResponseWriter, message string) {
	RespondErrorCode(w, http.StatusConflict, "SLOT_UNAVAILABLE", message)
}

// RespondInvalidTransition 409 с кодом INVALID_TRANSITION
func RespondInvalidTransition(w http.ResponseWriter, message string) {
	RespondErrorCode(w, http.StatusConflict, "INVALID_TRANSITION", message)
}

// RespondServiceUnavailable 503
func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, message)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
