// Package server
//
// @title Itemhub API
// @version 1.0
// @description Item management service API
// @host localhost:8000
// @BasePath /
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/itemhub-dev/itemhub/internal/auth"
	"github.com/itemhub-dev/itemhub/internal/config"
	"github.com/itemhub-dev/itemhub/internal/models"
)

// Server represents the HTTP server
type Server struct {
	router    *gin.Engine
	db        *gorm.DB
	config    *config.Config
	logger    zerolog.Logger
	validator *validator.Validate
	version   string
}

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	db, err := initDatabase(cfg, zlog)
	if err != nil {
		return nil, err
	}

	// Run database migrations
	if err := models.AutoMigrate(db); err != nil {
		return nil, err
	}

	// JWT secret lives in the database and is auto-generated on first boot
	if err := initJWT(db, zlog); err != nil {
		return nil, err
	}

	// Seed the first superuser from the environment if no users exist yet.
	// Registration never creates admins, so this is the only admin path.
	if err := seedAdmin(db, cfg, zlog); err != nil {
		return nil, err
	}

	server := &Server{
		db:        db,
		config:    cfg,
		logger:    zlog,
		validator: validator.New(),
		version:   version,
	}

	server.setupRouter()

	return server, nil
}

// initDatabase initializes the database connection with production settings
func initDatabase(cfg *config.Config, zlog zerolog.Logger) (*gorm.DB, error) {
	const (
		maxOpenConns    = 8
		maxIdleConns    = 4
		connMaxLifetime = 300 * time.Second
		busyTimeout     = 5000 // milliseconds
	)

	db, err := gorm.Open(sqlite.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				LogLevel:                  logger.Error,
				IgnoreRecordNotFoundError: true,
				SlowThreshold:             200 * time.Millisecond,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL mode must be set first for optimal concurrency
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout),
		"PRAGMA foreign_keys=1",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			zlog.Warn().Str("pragma", pragma).Err(err).Msg("Failed to apply pragma")
		}
	}

	return db, nil
}

// initJWT loads the persisted JWT secret, generating one on first boot
func initJWT(db *gorm.DB, zlog zerolog.Logger) error {
	var cfg models.Config
	if err := db.First(&cfg).Error; err == nil {
		auth.InitializeJWT(cfg.JWTSecret)
		zlog.Debug().Msg("Loaded JWT secret from database")
		return nil
	}

	// 64 hex characters = 32 bytes of randomness
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	secret := hex.EncodeToString(secretBytes)

	cfg = models.Config{JWTSecret: secret}
	if err := db.Create(&cfg).Error; err != nil {
		return fmt.Errorf("failed to persist JWT secret: %w", err)
	}

	auth.InitializeJWT(secret)
	zlog.Info().Msg("Generated new JWT secret")
	return nil
}

// seedAdmin creates the bootstrap superuser if configured and no users exist
func seedAdmin(db *gorm.DB, cfg *config.Config, zlog zerolog.Logger) error {
	if cfg.Admin.Username == "" || cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     cfg.Admin.Username,
		Email:        cfg.Admin.Email,
		PasswordHash: passwordHash,
		IsSuperuser:  true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	zlog.Info().Str("username", admin.Username).Msg("Seeded bootstrap superuser")
	return nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	// CORS middleware
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Public auth endpoints (no auth required)
	authRoutes := s.router.Group("/auth")
	{
		authRoutes.POST("/register", s.register)
		authRoutes.POST("/login", s.login)
	}

	// Authenticated item routes (JWT required)
	items := s.router.Group("/items")
	items.Use(JWTAuthMiddleware(s.db, s.logger))
	{
		items.GET("/", s.listItems)
		items.POST("/", s.createItem)
		items.PUT("/:id", s.updateItem)
		items.DELETE("/:id", s.deleteItem)

		// Admin-only listing of every user's items
		all := items.Group("/all")
		all.Use(AdminOnlyMiddleware(s.logger))
		all.GET("", s.listAllItems)
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

// @Router /health [get]
// @Success 200 {object} map[string]interface{}
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "itemhub-api",
	})
}

// GetDB returns the database connection, used by handler tests
func (s *Server) GetDB() *gorm.DB {
	return s.db
}

// Router returns the configured gin engine, used by handler tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until shutdown
func (s *Server) Start() error {
	addr := ":" + s.config.HTTP.Port

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	// Close database connection to flush WAL writes
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing database")
		}
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}
