package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/tuanngo/material-management/internal/auth"
	"github.com/tuanngo/material-management/internal/transport"
	"github.com/tuanngo/material-management/pkg/logger"
)

type ServiceAPI interface {
	GetAll() ([]*User, error)
	ChangeRole(userID int64, roleValue string) (*User, error)
	Delete(userID, callerID int64) error
	Create(dto CreateUserDTO) (*User, error)
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

type ListResponse struct {
	Users []*User `json:"users"`
}

// GetUsers handles GET /users. Admin only.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	users, err := h.Service.GetAll()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Users: users})
}

// UpdateRole handles PUT /users/{id}/role. Admin only.
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	updated, err := h.Service.ChangeRole(userID, r.PostFormValue("role"))
	if err != nil {
		switch err {
		case ErrUserNotFound:
			h.WriteError(w, http.StatusNotFound, "user not found")
		default:
			h.WriteServiceError(w, err, http.StatusBadRequest)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "role updated",
		"user": map[string]interface{}{
			"id":       updated.ID,
			"username": updated.Username,
			"role":     updated.Role,
		},
	})
}

// DeleteUser handles DELETE /users/{id}. Admin only; self-delete rejected.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Service.Delete(userID, caller.ID); err != nil {
		switch err {
		case ErrCannotDeleteSelf:
			h.WriteError(w, http.StatusBadRequest, "cannot delete own account")
		case ErrUserNotFound:
			h.WriteError(w, http.StatusNotFound, "user not found")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to delete user")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// CreateUser handles POST /users. Admin only.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	dto := CreateUserDTO{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		FullName: r.PostFormValue("full_name"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		switch err {
		case ErrDuplicateUser:
			h.WriteError(w, http.StatusBadRequest, "username or email already exists")
		default:
			h.WriteServiceError(w, err, http.StatusBadRequest)
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "user created",
		"user": map[string]interface{}{
			"id":       created.ID,
			"username": created.Username,
			"email":    created.Email,
			"role":     created.Role,
		},
	})
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}
	if !caller.Role.IsAdmin() {
		h.Logger.Warn("access denied: admin required", "user_id", caller.ID, "role", caller.Role)
		h.WriteError(w, http.StatusForbidden, "admin privileges required")
		return nil, false
	}
	return caller, true
}
