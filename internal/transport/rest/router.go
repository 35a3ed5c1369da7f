package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/tuanngo/material-management/internal/auth"
	"github.com/tuanngo/material-management/internal/department"
	"github.com/tuanngo/material-management/internal/material"
	"github.com/tuanngo/material-management/internal/preview"
	"github.com/tuanngo/material-management/internal/stats"
	"github.com/tuanngo/material-management/internal/transport/middleware"
	"github.com/tuanngo/material-management/internal/transport/swagger"
	"github.com/tuanngo/material-management/internal/user"
)

// RouterDeps carries everything RegisterAllRoutes wires together.
type RouterDeps struct {
	DB                *sql.DB
	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
	DepartmentHandler *department.Handler
	MaterialHandler   *material.Handler
	PreviewHandler    *preview.Handler
	StatsHandler      *stats.Handler
	ContentDir        string
	PublicPrefix      string
	AllowedOrigins    string
	Logger            *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))

	// OpenAPI spec and Swagger UI at root, outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded files are served statically under the public prefix. The
	// optional guard attaches the user to the context when a cookie is
	// present without turning anonymous requests away.
	fileServer := http.StripPrefix(deps.PublicPrefix+"/", http.FileServer(http.Dir(deps.ContentDir)))
	router.Handle(deps.PublicPrefix+"/*", deps.AuthHandler.OptionalAuthMiddleware(fileServer))

	// Browser-facing auth routes: the login form posts here and the handlers
	// answer with redirects, not JSON.
	router.Post("/login", deps.AuthHandler.Login)
	router.Post("/logout", deps.AuthHandler.Logout)
	router.Post("/register", deps.AuthHandler.Register)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)

			pr.Get("/departments", deps.DepartmentHandler.GetDepartments)

			pr.Route("/materials", func(mr chi.Router) {
				mr.Get("/", deps.MaterialHandler.GetMaterials)
				mr.Post("/", deps.MaterialHandler.CreateMaterial)
				mr.Get("/{id}", deps.MaterialHandler.GetMaterial)
				mr.Put("/{id}", deps.MaterialHandler.UpdateMaterial)
				mr.Delete("/{id}", deps.MaterialHandler.DeleteMaterial)
			})

			pr.Get("/preview/{material_id}/{file_index}", deps.PreviewHandler.GetPreview)

			pr.Get("/dashboard/stats", deps.StatsHandler.GetDashboardStats)
			pr.Get("/statistics/department/{id}", deps.StatsHandler.GetDepartmentStats)
			pr.Get("/statistics/overall", deps.StatsHandler.GetOverallStats)

			// User administration; the handlers enforce the admin role.
			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", deps.UserHandler.GetUsers)
				ur.Post("/", deps.UserHandler.CreateUser)
				ur.Put("/{id}/role", deps.UserHandler.UpdateRole)
				ur.Delete("/{id}", deps.UserHandler.DeleteUser)
			})
		})
	})
}
