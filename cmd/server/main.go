// @title           Adboard API
// @version         0.1.0
// @description     Ad transparency dashboard over the google and twitter scraping fleets.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"adboard/internal/config"
	cronrunner "adboard/internal/cron"
	"adboard/internal/db"
	"adboard/internal/fleet"
	"adboard/internal/handler"
	"adboard/internal/logger"
	gormrepository "adboard/internal/repository/gorm"
	"adboard/internal/service"
)

func main() {
	cfgPath := os.Getenv("ADB_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("ADB_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := gormrepository.New(dbConn.Gorm)
	googleAds := &service.GoogleAdService{Store: store, Logger: logger}
	twitterAds := &service.TwitterAdService{Store: store, Logger: logger}
	bots := &service.BotService{Store: store}
	tags := &service.TagService{Store: store}

	var fleetCtl fleet.Controller
	if cfg.Fleet.Enabled {
		manager, err := fleet.NewManager(ctx, cfg.Fleet.Region, cfg.Fleet.NameTag, logger)
		if err != nil {
			logger.Fatal("fleet init failed", zap.Error(err))
		}
		fleetCtl = manager
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware(cfg.CORS.Origin))

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	googleAdHandler := &handler.GoogleAdHandler{
		Service:      googleAds,
		Logger:       logger,
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	}
	googleAdHandler.Register(engine)
	twitterAdHandler := &handler.TwitterAdHandler{
		Service:      twitterAds,
		Logger:       logger,
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	}
	twitterAdHandler.Register(engine)
	googleBotHandler := &handler.GoogleBotHandler{Service: bots, Logger: logger}
	googleBotHandler.Register(engine)
	twitterBotHandler := &handler.TwitterBotHandler{Service: bots, Fleet: fleetCtl, Logger: logger}
	twitterBotHandler.Register(engine)
	tagHandler := &handler.TagHandler{Service: tags, Logger: logger}
	tagHandler.Register(engine)
	statsHandler := &handler.StatsHandler{Store: store, Logger: logger}
	statsHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled && fleetCtl != nil {
		_, err = cronRunner.Add("fleet-status", cfg.Cron.FleetStatus, func(ctx context.Context) {
			statuses, err := fleetCtl.Status(ctx)
			if err != nil {
				logger.Warn("cron fleet status failed", zap.Error(err))
				return
			}
			running := 0
			for _, st := range statuses {
				if st.State == "running" {
					running++
				}
			}
			logger.Info("fleet status",
				zap.Int("instances", len(statuses)),
				zap.Int("running", running),
			)
		})
		if err != nil {
			logger.Warn("cron register fleet status failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
