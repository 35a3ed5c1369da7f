package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tuanngo/material-management/internal"
	"github.com/tuanngo/material-management/pkg/logger"
)

// AccessTokenCookie is the cookie carrying the bearer token.
const AccessTokenCookie = "access_token"

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"code":    status,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// WriteServiceError maps an application error to its HTTP status when the
// service classified it, falling back to the given status otherwise.
func (h *BaseHandler) WriteServiceError(w http.ResponseWriter, err error, fallbackStatus int) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.WriteError(w, fallbackStatus, err.Error())
}

// ExtractTokenFromCookie reads the access token cookie and strips the
// optional "Bearer " prefix. Returns "" when the cookie is absent.
func (h *BaseHandler) ExtractTokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return strings.TrimPrefix(cookie.Value, "Bearer ")
}
