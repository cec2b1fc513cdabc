package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/facemark/attendance-backend-go/internal/handler/http/middleware"
	"github.com/facemark/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// ParseLogLevel maps the LOG_LEVEL setting to a slog level, defaulting to
// info for unknown values.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	allowedOrigin string,
	uploadsDir string,
	logLevel string,
) *chi.Mux {
	r := chi.NewRouter()
	level := ParseLogLevel(logLevel)
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  level,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Profile photos stored by the local FileStorage.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Kiosk endpoint: the device in the lobby is trusted, taps carry
		// no credentials.
		r.Post("/attendance/check", attendanceHandler.Check)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/my", attendanceHandler.GetMyRecords)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", attendanceHandler.ListForDate)
					r.Get("/range", attendanceHandler.ListByRange)
					r.Get("/summary", attendanceHandler.Summary)
					r.Get("/employee/{employeeID}", attendanceHandler.GetForEmployee)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/profile", employeeHandler.GetProfile)
				r.Get("/profile/name", employeeHandler.GetProfileName)
				r.Get("/profile/photo", employeeHandler.GetProfilePhoto)
				r.Patch("/profile", employeeHandler.UpdateProfile)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", employeeHandler.List)
					r.Get("/{employeeID}", employeeHandler.Get)
					r.Put("/{employeeID}", employeeHandler.Update)
					r.Delete("/{employeeID}", employeeHandler.Delete)
				})
			})
		})
	})

	return r
}
