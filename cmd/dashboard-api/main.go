package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/publish"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/modules/dashboard"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/modules/dashboard/handlers"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/sales-dashboard-be/cmd/dashboard-api/docs"
)

// @title Sales Dashboard API
// @version 1.0
// @description Order sheet aggregation and chart layout API
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	log.Printf("🚀 Starting dashboard-api on port %s", cfg.Port)

	mod, err := dashboard.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dashboard: %v", err)
	}

	log.Printf("📄 Using source provider: %s (%s)", mod.Source.GetProviderName(), cfg.SourceURI)
	log.Printf("📦 Using publish provider: %s", mod.Publisher.GetProviderName())
	log.Printf("📊 %d charts registered", len(mod.Charts.Registry().IDs()))

	// Scheduled reports
	var sched *scheduler.Scheduler
	if cfg.ReportSchedule != "" {
		format, err := export.ParseFormat(cfg.ReportFormat)
		if err != nil {
			log.Fatalf("Invalid REPORT_FORMAT: %v", err)
		}
		sched = scheduler.NewScheduler()
		job := mod.Reports.ScheduledJob(nil, format, 2*cfg.SourceTimeout)
		if err := sched.AddReport("sales-report", cfg.ReportSchedule, job); err != nil {
			log.Fatalf("Failed to schedule report: %v", err)
		}
		sched.Start()
		log.Printf("⏰ Report scheduled: %s (%s)", cfg.ReportSchedule, format)
	} else {
		log.Printf("⚠️  REPORT_SCHEDULE not set, scheduled reports disabled")
	}

	// Init handlers
	chartHandler := handlers.NewChartHandler(mod.Charts, mod.Reports)
	healthHandler := handlers.NewHealthHandler(mod.Source, mod.Publisher, mod.Charts.Registry(), sched)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Sales Dashboard API",
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Chart routes
	app.Get("/charts", chartHandler.ListCharts)
	app.Get("/charts/:id", chartHandler.GetChart)
	app.Get("/charts/:id/export", chartHandler.ExportChart)

	// Report routes
	app.Post("/reports", chartHandler.RunReport)
	if cfg.PublishProvider == "local" {
		app.Static(publish.PublicPath, cfg.PublishPath)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down dashboard-api...")
		if sched != nil {
			select {
			case <-sched.Stop().Done():
			case <-time.After(30 * time.Second):
				log.Println("⚠️  Scheduled report still running, forcing shutdown")
			}
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Shutdown error: %v", err)
		}
	}()

	log.Printf("✅ Server listening at :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
