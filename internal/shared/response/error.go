package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"planet-randomizer/internal/shared/errors"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type errorClass struct {
	status int
	level  slog.Level
	msg    string
}

var errorClasses = map[errors.ErrorType]errorClass{
	errors.ErrorTypeNotFound:     {http.StatusNotFound, slog.LevelDebug, "Client error"},
	errors.ErrorTypeValidation:   {http.StatusBadRequest, slog.LevelDebug, "Client error"},
	errors.ErrorTypeConflict:     {http.StatusConflict, slog.LevelInfo, "Conflict error"},
	errors.ErrorTypeUnauthorized: {http.StatusUnauthorized, slog.LevelWarn, "Authorization error"},
	errors.ErrorTypeForbidden:    {http.StatusForbidden, slog.LevelWarn, "Authorization error"},
	// The seed and configuration reproduce a generation failure, so it is kept at warn.
	errors.ErrorTypeGeneration: {http.StatusUnprocessableEntity, slog.LevelWarn, "Generation failed"},
	errors.ErrorTypeExternal:   {http.StatusServiceUnavailable, slog.LevelError, "External service error"},
	errors.ErrorTypeInternal:   {http.StatusInternalServerError, slog.LevelError, "Internal server error"},
}

func classOf(errorType errors.ErrorType) errorClass {
	if class, ok := errorClasses[errorType]; ok {
		return class
	}
	return errorClasses[errors.ErrorTypeInternal]
}

// StatusCode maps an error category to its HTTP status.
func StatusCode(errorType errors.ErrorType) int {
	return classOf(errorType).status
}

// Error logs err and sends it as a JSON error reply. Handlers return errors
// up to here instead of logging them themselves.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ErrorWithMessage(w, r, logger, err, err.Error())
}

// ErrorWithMessage is Error with a client-facing message that differs from the logged one.
func ErrorWithMessage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, clientMessage string) {
	errorType := errors.GetType(err)
	class := classOf(errorType)

	logger.Log(r.Context(), class.level, class.msg,
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", class.status,
		"error", err,
	)

	Success(w, class.status, ErrorResponse{
		Error:   string(errorType),
		Message: clientMessage,
		Code:    class.status,
	})
}

// Success sends data as a JSON reply with the given status. A nil data sends no body.
func Success(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		// The status code has already been sent
		_ = json.NewEncoder(w).Encode(data)
	}
}
