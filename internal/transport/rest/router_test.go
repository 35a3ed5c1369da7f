package rest_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tuanngo/material-management/internal/auth"
	"github.com/tuanngo/material-management/internal/department"
	"github.com/tuanngo/material-management/internal/material"
	"github.com/tuanngo/material-management/internal/preview"
	"github.com/tuanngo/material-management/internal/stats"
	"github.com/tuanngo/material-management/internal/transport"
	"github.com/tuanngo/material-management/internal/transport/rest"
	"github.com/tuanngo/material-management/internal/user"
)

var _ = Describe("Router", func() {
	var router *chi.Mux

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.RouterDeps{
			AuthHandler:       auth.NewHandler(nil),
			UserHandler:       user.NewHandler(nil),
			DepartmentHandler: department.NewHandler(nil),
			MaterialHandler:   material.NewHandler(nil),
			PreviewHandler:    preview.NewHandler(nil),
			StatsHandler:      stats.NewHandler(nil),
			ContentDir:        "static/uploads",
			PublicPrefix:      "/static/uploads",
			AllowedOrigins:    "*",
			Logger:            logger,
		})
	})

	Describe("logout route", func() {
		It("accepts POST, clears the cookie and redirects to login", func() {
			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusFound))
			Expect(rec.Header().Get("Location")).To(Equal("/login"))

			cookies := rec.Result().Cookies()
			Expect(cookies).ToNot(BeEmpty())
			Expect(cookies[0].Name).To(Equal(transport.AccessTokenCookie))
			Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))
		})

		It("does not answer GET", func() {
			req := httptest.NewRequest(http.MethodGet, "/logout", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
		})
	})
})
