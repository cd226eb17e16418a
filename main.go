package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"github.com/ahmedsamir45/big-mac-index/config"
	"github.com/ahmedsamir45/big-mac-index/controllers"
	"github.com/ahmedsamir45/big-mac-index/dataset"
	"github.com/ahmedsamir45/big-mac-index/logger"
	"github.com/ahmedsamir45/big-mac-index/middleware"
	"github.com/ahmedsamir45/big-mac-index/routes"
)

func main() {
	cfgPath := os.Getenv("BMI_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if raw := os.Getenv("BMI_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	dataset.Default = dataset.NewFileSource(cfg.Dataset.Path, cfg.Dataset.Cache)
	if _, err := os.Stat(cfg.Dataset.Path); err != nil {
		// not fatal: every request reloads the file, so it may appear later
		log.Warn("dataset not readable yet", zap.String("path", cfg.Dataset.Path), zap.Error(err))
	}

	controllers.ChartOptions = controllers.ChartSettings{
		TopN:    cfg.Charts.TopN,
		Tracked: cfg.Charts.Tracked,
	}

	app := newApp(cfg, log)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("🚀 server running",
		zap.String("addr", cfg.Server.HTTPAddr),
		zap.String("env", cfg.App.Env),
		zap.String("dataset", cfg.Dataset.Path))
	if err := app.Listen(cfg.Server.HTTPAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newApp(cfg config.Config, log *zap.Logger) *fiber.App {
	engine := html.New(cfg.Web.ViewsDir, ".html")
	if cfg.App.Env == "dev" {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: cfg.App.Env != "dev",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET, OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(middleware.RequestID())
	if cfg.App.Env == "dev" {
		app.Use(fiberlogger.New())
	}
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.NoStore)

	routes.RegisterPageRoutes(app, cfg.Web.ViewsDir, cfg.Web.StaticDir)
	routes.RegisterPriceRoutes(app)
	routes.RegisterHealthRoutes(app)

	return app
}
