package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kambaz_api/internal/api"
	"kambaz_api/internal/app/service"
	"kambaz_api/internal/app/session"
	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/common/security"
	"kambaz_api/internal/domain/repository"
	"kambaz_api/internal/platform/config"
	"kambaz_api/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	cfg := config.AppConfig
	fmt.Println("Configuration loaded.")

	// 2. Initialize Session Cookie
	cookie := security.NewSessionCookie(cfg.SessionSecret, cfg.SessionCookieName, cfg.SessionMaxAge, cfg.Production)
	fmt.Println("Session cookie initialized.")

	// 3. Initialize Document Store
	var store repository.DocumentStore
	switch cfg.StoreDriver {
	case config.StorePostgres:
		database.Connect()
		defer database.Close()
		store = repository.NewPgDocumentStore(database.DB)
	case config.StoreMongo:
		database.ConnectMongo()
		defer database.CloseMongo()
		store = repository.NewMongoDocumentStore(database.MongoDB)
	case config.StoreMemory:
		store = repository.NewMemoryDocumentStore()
	default:
		log.Fatalf("Unknown STORE_DRIVER %q (want memory, postgres or mongo)", cfg.StoreDriver)
	}
	fmt.Printf("Document store ready (%s).\n", cfg.StoreDriver)

	// 4. Initialize Password Hashing
	hasher, err := security.NewPasswordHasher(cfg.PasswordHashing)
	if err != nil {
		log.Fatalf("Invalid PASSWORD_HASHING: %v", err)
	}

	// 5. Initialize Services
	gen := ids.UUID{}
	sessions := session.NewRegistry()
	enrollmentService := service.NewEnrollmentService(store)
	services := api.Services{
		Auth:        service.NewAuthService(store, sessions, hasher, gen),
		Users:       service.NewUserService(store, hasher, gen),
		Courses:     service.NewCourseService(store, enrollmentService, gen),
		Modules:     service.NewModuleService(store, gen),
		Assignments: service.NewAssignmentService(store, gen),
		Enrollments: enrollmentService,
		Quizzes:     service.NewQuizService(store, gen),
	}

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(services, cookie, api.CORSConfig{
		ClientURL:      cfg.ClientURL,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.Port, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server shutdown failed: %v", err)
		return
	}

	log.Println("Server stopped gracefully.")
}
