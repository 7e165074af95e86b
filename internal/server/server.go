package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/ExplorerOS/backend/internal/api/http"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/clipboard"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/devices"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/locations"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/metadata"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/operations"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/store"
)

// Server owns the HTTP listener and every explorer component behind it.
type Server struct {
	cfg     *config.Config
	router  *gin.Engine
	http    *http.Server
	store   *store.Store
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewServer wires the full component graph: store, domain managers, the
// operation engine, and the HTTP routes.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	st, err := store.Open(cfg.Explorer.DBPath)
	if err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()

	meta := metadata.NewService(cfg.Explorer.RootDir, logger)
	locManager := locations.NewManager(st, logger)
	// An operator-set root_directory config value overrides the env root on
	// the next request; without one the env root stands.
	meta.SetRootSource(func() string {
		root, ok, err := locManager.PersistedConfigValue(locations.ConfigRootDirectory)
		if err != nil || !ok {
			return ""
		}
		return root
	})
	clipManager := clipboard.NewManager()
	enumerator := devices.NewEnumerator(devices.ExecLister{}, logger)
	tracker := operations.NewTracker(st, logger)
	engine := operations.NewEngine(tracker, meta, logger, metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(nil))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	handlers := api.NewHandlers(meta, locManager, clipManager, enumerator, engine, logger)
	registerRoutes(router, handlers)

	return &Server{
		cfg:     cfg,
		router:  router,
		store:   st,
		logger:  logger,
		metrics: metrics,
	}, nil
}

func registerRoutes(router *gin.Engine, h *api.Handlers) {
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	explorer := router.Group("/explorer")
	{
		explorer.GET("/list", h.ListDirectory)
		explorer.GET("/cwd", h.GetCwd)
		explorer.POST("/navigate", h.Navigate)
		explorer.GET("/download", h.DownloadFile)
		explorer.GET("/properties", h.GetProperties)
		explorer.POST("/create-directory", h.CreateDirectory)
		explorer.DELETE("/delete", h.DeleteEntries)
		explorer.POST("/rename", h.RenameEntry)

		explorer.POST("/clipboard/copy", h.ClipboardCopy)
		explorer.POST("/clipboard/cut", h.ClipboardCut)
		explorer.POST("/clipboard/paste", h.ClipboardPaste)
		explorer.GET("/clipboard/status", h.ClipboardStatus)
		explorer.DELETE("/clipboard/clear", h.ClipboardClear)

		explorer.GET("/bookmarks", h.ListBookmarks)
		explorer.POST("/bookmarks", h.CreateBookmark)
		explorer.PUT("/bookmarks/:id", h.UpdateBookmark)
		explorer.DELETE("/bookmarks/:id", h.DeleteBookmark)

		explorer.GET("/usb-devices", h.ListUSBDevices)

		explorer.POST("/search", h.SubmitSearch)
		explorer.GET("/operations", h.ListOperations)
		explorer.GET("/operations/:id", h.GetOperation)
		explorer.DELETE("/operations/:id", h.DeleteOperation)

		explorer.GET("/config", h.GetConfig)
		explorer.PUT("/config", h.UpdateConfig)
	}
}

// Run starts the HTTP listener and blocks until it stops.
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Explorer backend listening",
		zap.String("addr", addr),
		zap.String("root_dir", s.cfg.Explorer.RootDir),
		zap.String("db_path", s.cfg.Explorer.DBPath))

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases the store. Background
// operation workers are not awaited; their progress is already persisted.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Warn("HTTP shutdown incomplete", zap.Error(err))
		}
	}
	return s.store.Close()
}
