package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-app/kintai-backend-go/internal/handler/http/middleware"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, attendanceHandler AttendanceHandler, correctionHandler CorrectionHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kintai-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListMonth)
				r.Get("/today", attendanceHandler.GetToday)

				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/break-start", attendanceHandler.StartBreak)
				r.Post("/break-end", attendanceHandler.EndBreak)
				r.Post("/clock-out", attendanceHandler.ClockOut)

				r.Route("/{date}", func(r chi.Router) {
					r.Get("/", attendanceHandler.GetDay)
					r.Post("/corrections", correctionHandler.File)
				})
			})

			r.Route("/corrections", func(r chi.Router) {
				r.Get("/", correctionHandler.ListMine)
				r.Get("/{id}", correctionHandler.Get)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/attendances", attendanceHandler.ListByDate)
				r.Get("/users/{employeeID}/attendances", attendanceHandler.ListMonthForEmployee)
				r.Route("/corrections", func(r chi.Router) {
					r.Get("/", correctionHandler.List)
					r.Post("/{id}/approve", correctionHandler.Approve)
				})
			})
		})
	})
	return r
}
