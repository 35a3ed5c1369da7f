package department

import (
	"log/slog"
	"net/http"

	"github.com/tuanngo/material-management/internal/transport"
	"github.com/tuanngo/material-management/pkg/logger"
)

type ServiceAPI interface {
	GetAll() ([]*Department, error)
	Exists(id int64) (bool, error)
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
	Departments []*Department `json:"departments"`
}

func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.GetAll()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list departments")
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Departments: departments})
}
