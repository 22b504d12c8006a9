package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ameen01/Bad-Trade/internal/config"
	"github.com/ameen01/Bad-Trade/internal/handler"
	"github.com/ameen01/Bad-Trade/internal/repository"
	"github.com/ameen01/Bad-Trade/internal/service"
	"github.com/ameen01/Bad-Trade/internal/session"
	"github.com/ameen01/Bad-Trade/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)
	gin.SetMode(cfg.GinMode)

	// --- Storage ---
	var (
		usersDoc, recordsDoc repository.Document
		health               handler.HealthCheck
	)
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		dbPool, err := config.ConnectDB(context.Background(), cfg.DB)
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()

		if err := config.AutoMigrate(context.Background(), dbPool); err != nil {
			logrus.Fatalf("Failed to auto-migrate database: %v", err)
		}

		usersDoc = repository.NewPostgresDocument(dbPool, "users")
		recordsDoc = repository.NewPostgresDocument(dbPool, "records")
		health = dbPool.Ping
	default:
		usersDoc = repository.NewFileDocument(cfg.UsersFile)
		recordsDoc = repository.NewFileDocument(cfg.DataFile)
		health = func(context.Context) error {
			_, err := os.Stat(filepath.Dir(cfg.DataFile))
			return err
		}
	}
	logrus.WithFields(logrus.Fields{
		"backend": cfg.StorageBackend,
		"users":   usersDoc.Name(),
		"records": recordsDoc.Name(),
	}).Info("Storage configured")

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(usersDoc)
	recordRepo := repository.NewRecordRepository(recordsDoc)

	// --- Initialize Services ---
	jwtUtil := utils.NewJWTUtil(cfg.SessionSecret)
	sessions := session.NewManager(userRepo, recordRepo)
	authService := service.NewAuthService()
	dashboardService := service.NewDashboardService(userRepo, recordRepo)

	// --- Setup Gin Router ---
	router, err := handler.NewRouter(sessions, jwtUtil, authService, dashboardService, health)
	if err != nil {
		logrus.Fatalf("Failed to set up router: %v", err)
	}

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logrus.Infof("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatal("Server forced to shutdown: ", err)
	}

	logrus.Info("Server exiting")
}
