package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bhutuklearning/The-Note-App/internal/config"
	"github.com/bhutuklearning/The-Note-App/internal/handler"
	"github.com/bhutuklearning/The-Note-App/internal/metrics"
	"github.com/bhutuklearning/The-Note-App/internal/middleware"
	"github.com/bhutuklearning/The-Note-App/internal/repository"
	"github.com/bhutuklearning/The-Note-App/internal/sanitizer"
	"github.com/bhutuklearning/The-Note-App/internal/service"
	"github.com/bhutuklearning/The-Note-App/pkg/response"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logrus.SetLevel(level)
	}

	couchURL := fmt.Sprintf("http://%s:%s@%s:%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
	)

	client, err := kivik.New("couch", couchURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to CouchDB: %v", err)
	}

	exists, err := client.DBExists(context.Background(), cfg.Database.Name)
	if err != nil {
		logrus.Fatalf("Failed to check database existence: %v", err)
	}

	if !exists {
		if err := client.CreateDB(context.Background(), cfg.Database.Name); err != nil {
			logrus.Fatalf("Failed to create database: %v", err)
		}
		logrus.Infof("Created database: %s", cfg.Database.Name)
	}

	if err := repository.EnsureIndexes(client, cfg.Database.Name); err != nil {
		logrus.Fatalf("Failed to create indexes: %v", err)
	}

	noteRepo := repository.NewNoteRepository(client, cfg.Database.Name)
	richText := sanitizer.NewRichText()
	noteService := service.NewNoteService(noteRepo, richText)
	noteHandler := handler.NewNoteHandler(noteService)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))
	r.Use(middleware.MetricsMiddleware(collector))

	notes := r.PathPrefix("/api/v1/notes").Subrouter()

	notes.HandleFunc("/search", noteHandler.Search).Methods("GET", "OPTIONS")
	notes.HandleFunc("", noteHandler.List).Methods("GET", "OPTIONS")
	notes.HandleFunc("/", noteHandler.List).Methods("GET", "OPTIONS")
	notes.HandleFunc("/create-note", noteHandler.Create).Methods("POST", "OPTIONS")
	notes.HandleFunc("/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	notes.HandleFunc("/{id}", noteHandler.Update).Methods("PUT", "OPTIONS")
	notes.HandleFunc("/{id}/like", noteHandler.Like).Methods("POST", "OPTIONS")
	notes.HandleFunc("/{id}/dislike", noteHandler.Dislike).Methods("POST", "OPTIONS")
	notes.HandleFunc("/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")

	r.Handle("/metrics", metrics.Handler(registry)).Methods("GET")
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Starting Notes API on %s (env: %s)", addr, cfg.Server.Env)
		logrus.Infof("Connected to CouchDB at %s:%s", cfg.Database.Host, cfg.Database.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "notes-api"})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Welcome to the Notes API"})
}
