package api

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kambaz_api/internal/api/handler"
	"kambaz_api/internal/api/middleware"
	"kambaz_api/internal/app/service"
	"kambaz_api/internal/common"
	"kambaz_api/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

const localDevOrigin = "http://localhost:3000"

// Services is everything the HTTP layer needs.
type Services struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Courses     *service.CourseService
	Modules     *service.ModuleService
	Assignments *service.AssignmentService
	Enrollments *service.EnrollmentService
	Quizzes     *service.QuizService
}

// CORSConfig lists the origins allowed besides the local dev client and
// *.vercel.app deployments.
type CORSConfig struct {
	ClientURL      string
	AllowedOrigins []string
}

func NewRouter(svc Services, cookie *security.SessionCookie, corsCfg CORSConfig) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  AllowOrigin(corsCfg),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Cookie"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Session cookie: verify the JWT, then expose its registry token.
	r.Use(jwtauth.Verify(cookie.TokenAuth, cookie.FromRequest))
	r.Use(middleware.SessionLoader)

	health := func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"message":   "Kambaz API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
	r.Get("/", health)
	r.Get("/health", health)

	authHandler := handler.NewAuthHandler(svc.Auth, cookie)
	userHandler := handler.NewUserHandler(svc.Users, svc.Courses, svc.Enrollments, svc.Auth)
	courseHandler := handler.NewCourseHandler(svc.Courses, svc.Modules, svc.Assignments, svc.Enrollments)
	moduleHandler := handler.NewModuleHandler(svc.Modules)
	assignmentHandler := handler.NewAssignmentHandler(svc.Assignments)
	quizHandler := handler.NewQuizHandler(svc.Quizzes)

	r.Route("/api", func(api chi.Router) {
		api.Route("/users", func(users chi.Router) {
			authHandler.RegisterRoutes(users)
			userHandler.RegisterRoutes(users)
		})
		api.Route("/courses", courseHandler.RegisterRoutes)
		api.Route("/modules", moduleHandler.RegisterRoutes)
		api.Route("/assignments", assignmentHandler.RegisterRoutes)
		api.Route("/quizzes", quizHandler.RegisterRoutes)
	})

	return r
}

// AllowOrigin reports whether a browser origin may call the API with
// credentials. Rejected origins are logged.
func AllowOrigin(cfg CORSConfig) func(r *http.Request, origin string) bool {
	allowed := map[string]struct{}{localDevOrigin: {}}
	for _, o := range append([]string{cfg.ClientURL}, cfg.AllowedOrigins...) {
		if o = normalizeOrigin(o); o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(r *http.Request, origin string) bool {
		if _, ok := allowed[origin]; ok {
			return true
		}
		if strings.Contains(origin, "vercel.app") {
			return true
		}
		log.Printf("WARN: CORS blocked origin: %s", origin)
		return false
	}
}

// normalizeOrigin reduces a configured URL to scheme://host[:port], the form
// browsers send in the Origin header. "https://app.example.com/login/"
// becomes "https://app.example.com".
func normalizeOrigin(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Scheme + "://" + u.Host
	}
	return strings.TrimRight(raw, "/")
}
