package preview

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/tuanngo/material-management/internal/material"
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

// GetPreview handles GET /api/preview/{material_id}/{file_index}.
func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	materialID, err := strconv.ParseInt(chi.URLParam(r, "material_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid material id")
		return
	}
	fileIndex, err := strconv.Atoi(chi.URLParam(r, "file_index"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid file index")
		return
	}

	result, err := h.service.Preview(materialID, fileIndex)
	if err != nil {
		switch {
		case errors.Is(err, material.ErrMaterialNotFound):
			h.WriteError(w, http.StatusNotFound, "material not found")
		case errors.Is(err, ErrFileIndexOutOfRange), errors.Is(err, ErrFileMissing):
			h.WriteError(w, http.StatusNotFound, "file not found")
		case errors.Is(err, ErrUnsupportedFormat):
			h.WriteError(w, http.StatusBadRequest, ErrUnsupportedFormat.Error())
		default:
			h.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}
