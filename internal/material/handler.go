package material

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/tuanngo/material-management/internal/auth"
	"github.com/tuanngo/material-management/internal/transport"
	"github.com/tuanngo/material-management/pkg/logger"
)

// maxUploadBytes caps one multipart upload request.
const maxUploadBytes = 64 << 20

// bucketFields maps the fixed multipart field names to their category
// labels, in canonical order.
var bucketFields = []struct {
	Field    string
	Category string
}{
	{"tailieu_files", CategoryDocuments},
	{"baigiang_files", CategoryLectures},
	{"decuong_files", CategoryOutlines},
	{"trinhchieu_files", CategorySlides},
}

type ServiceAPI interface {
	Create(user *auth.User, dto CreateMaterialDTO) (int64, error)
	Get(id int64) (*Material, error)
	List(params SearchParams) ([]*Material, error)
	Update(user *auth.User, id int64, dto UpdateMaterialDTO) (*Material, error)
	Delete(user *auth.User, id int64) error
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
	Materials []ListItem `json:"materials"`
}

// GetMaterials handles GET /materials with the optional department_id,
// uploader, search and search_content query parameters.
func (h *Handler) GetMaterials(w http.ResponseWriter, r *http.Request) {
	params := SearchParams{
		Uploader:      r.URL.Query().Get("uploader"),
		Search:        r.URL.Query().Get("search"),
		SearchContent: r.URL.Query().Get("search_content") == "true",
	}

	if raw := r.URL.Query().Get("department_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid department_id")
			return
		}
		params.DepartmentID = &id
	}

	materials, err := h.Service.List(params)
	if err != nil {
		h.Logger.Error("GetMaterials: listing failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list materials")
		return
	}

	items := make([]ListItem, 0, len(materials))
	for _, m := range materials {
		items = append(items, m.ToListItem())
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Materials: items})
}

// GetMaterial handles GET /materials/{id}.
func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.materialID(w, r)
	if !ok {
		return
	}

	m, err := h.Service.Get(id)
	if err != nil {
		if err == ErrMaterialNotFound {
			h.WriteError(w, http.StatusNotFound, "material not found")
		} else {
			h.WriteError(w, http.StatusInternalServerError, "failed to load material")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, m.ToDetail())
}

// CreateMaterial handles the multipart POST /materials upload.
func (h *Handler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	departmentID, err := strconv.ParseInt(r.FormValue("department_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department_id")
		return
	}

	dto := CreateMaterialDTO{
		Title:        r.FormValue("title"),
		Subject:      r.FormValue("subject"),
		Topic:        r.FormValue("topic"),
		DepartmentID: departmentID,
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, bucket := range bucketFields {
		for _, header := range r.MultipartForm.File[bucket.Field] {
			if header.Filename == "" {
				continue
			}
			f, err := header.Open()
			if err != nil {
				h.WriteError(w, http.StatusBadRequest, "unreadable uploaded file")
				return
			}
			opened = append(opened, f)
			dto.Uploads = append(dto.Uploads, FileUpload{
				Category: bucket.Category,
				Name:     header.Filename,
				Content:  f,
			})
		}
	}

	id, err := h.Service.Create(user, dto)
	if err != nil {
		switch err {
		case ErrNotPermitted:
			h.WriteError(w, http.StatusForbidden, "only superusers and admins can upload materials")
		case ErrNoFilesUploaded:
			h.WriteError(w, http.StatusBadRequest, "at least one file is required")
		case ErrDepartmentNotFound:
			h.WriteError(w, http.StatusNotFound, "department not found")
		default:
			h.WriteServiceError(w, err, http.StatusBadRequest)
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "material created",
		"material_id": id,
	})
}

// UpdateMaterial handles the metadata-only PUT /materials/{id}.
func (h *Handler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	id, ok := h.materialID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	departmentID, err := strconv.ParseInt(r.PostFormValue("department_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department_id")
		return
	}

	dto := UpdateMaterialDTO{
		Title:        r.PostFormValue("title"),
		Subject:      r.PostFormValue("subject"),
		Topic:        r.PostFormValue("topic"),
		DepartmentID: departmentID,
	}

	updated, err := h.Service.Update(user, id, dto)
	if err != nil {
		h.writeMutationError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "material updated",
		"material": map[string]interface{}{
			"id":            updated.ID,
			"title":         updated.Title,
			"subject":       updated.Subject,
			"topic":         updated.Topic,
			"department_id": updated.DepartmentID,
		},
	})
}

// DeleteMaterial handles DELETE /materials/{id}.
func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	id, ok := h.materialID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(user, id); err != nil {
		h.writeMutationError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "material deleted"})
}

func (h *Handler) writeMutationError(w http.ResponseWriter, err error) {
	switch err {
	case ErrMaterialNotFound:
		h.WriteError(w, http.StatusNotFound, "material not found")
	case ErrNotPermitted:
		h.WriteError(w, http.StatusForbidden, "you may only modify your own materials")
	case ErrDepartmentNotFound:
		h.WriteError(w, http.StatusNotFound, "department not found")
	default:
		h.WriteServiceError(w, err, http.StatusBadRequest)
	}
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}
	return user, true
}

func (h *Handler) materialID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid material id")
		return 0, false
	}
	return id, true
}
