package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tuanngo/material-management/internal/transport"
	"github.com/tuanngo/material-management/pkg/logger"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// UserFromContext returns the authenticated user placed by AuthMiddleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (string, time.Time, error)
	Register(dto RegisterDTO) error
	CurrentUser(tokenString string) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Login handles the login form, sets the token cookie and redirects to the
// dashboard.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	dto := LoginDTO{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	token, expiresAt, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "username", dto.Username, "error", err)
		if err == ErrInvalidCredentials {
			h.WriteError(w, http.StatusUnauthorized, "invalid username or password")
		} else {
			h.WriteServiceError(w, err, http.StatusBadRequest)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     transport.AccessTokenCookie,
		Value:    "Bearer " + token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Logout clears the token cookie and redirects to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     transport.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusFound)
}

// Register creates a plain-role account from the public form.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	dto := RegisterDTO{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		FullName: r.PostFormValue("full_name"),
		Password: r.PostFormValue("password"),
	}

	if err := h.Service.Register(dto); err != nil {
		if err == ErrDuplicateUser {
			h.WriteError(w, http.StatusBadRequest, "username or email already exists")
		} else {
			h.WriteServiceError(w, err, http.StatusBadRequest)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// AuthMiddleware is the cookie-carried token guard. It fails closed with 401
// when the cookie is absent, the token does not decode, the subject claim is
// missing, or the subject matches no known user.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveUser(r)
		if err != nil {
			h.Logger.Warn("auth middleware: rejecting request", "path", r.URL.Path, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware swallows guard failures and continues without a
// user in context instead of propagating 401.
func (h *Handler) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveUser(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) resolveUser(r *http.Request) (*User, error) {
	token := h.ExtractTokenFromCookie(r)
	if token == "" {
		return nil, ErrInvalidToken
	}
	return h.Service.CurrentUser(token)
}
