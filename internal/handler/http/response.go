package http

import (
	"Dealbies-Backend/internal/service"
	"Dealbies-Backend/internal/validator"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// maxBodyBytes ограничение размера JSON тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

// decodeAndValidate читает JSON тело и проверяет контракт
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validator, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := v.ValidateStruct(dst); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeServiceError переводит ошибки сервисного слоя в HTTP статусы
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, msg string, fields ...zap.Field) {
	switch {
	case validator.IsValidationError(err), errors.Is(err, service.ErrInvalidRequest):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrOfferNotFound):
		writeError(w, "offer not found", http.StatusNotFound)
	case errors.Is(err, service.ErrSlugGeneration):
		writeError(w, "could not allocate a slug, please retry", http.StatusConflict)
	default:
		log.Error(msg, append(fields, zap.Error(err))...)
		writeError(w, "internal server error", http.StatusInternalServerError)
	}
}
