package stats

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/tuanngo/material-management/internal/transport"
	"github.com/tuanngo/material-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	service *Service
}

func NewHandler(service *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		service:     service,
	}
}

// GetDashboardStats handles GET /api/dashboard/stats.
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Dashboard()
	if err != nil {
		h.Logger.Error("dashboard stats failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute dashboard statistics")
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

// GetDepartmentStats handles GET /api/statistics/department/{id}.
func (h *Handler) GetDepartmentStats(w http.ResponseWriter, r *http.Request) {
	departmentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department id")
		return
	}

	result, err := h.service.Department(departmentID)
	if err != nil {
		if errors.Is(err, ErrDepartmentNotFound) {
			h.WriteError(w, http.StatusNotFound, "department not found")
			return
		}
		h.Logger.Error("department stats failed", "department_id", departmentID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute department statistics")
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

// GetOverallStats handles GET /api/statistics/overall.
func (h *Handler) GetOverallStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Overall()
	if err != nil {
		h.Logger.Error("overall stats failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute overall statistics")
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}
