package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/tutoring_api/configs"
	"github.com/anjiri1684/tutoring_api/database"
	"github.com/anjiri1684/tutoring_api/handlers"
	"github.com/anjiri1684/tutoring_api/jobs"
	"github.com/anjiri1684/tutoring_api/middleware"
	"github.com/anjiri1684/tutoring_api/monitoring"
	"github.com/anjiri1684/tutoring_api/notifications"
	"github.com/anjiri1684/tutoring_api/routes"
	"github.com/anjiri1684/tutoring_api/services"
	"github.com/anjiri1684/tutoring_api/utils"
	"github.com/anjiri1684/tutoring_api/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	settings := config.Load()

	log, err := utils.NewLogger(utils.LoggerOptions{
		Production: settings.IsProduction(),
		Level:      settings.LogLevel,
		File:       settings.LogFile,
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := database.NewStore()
	if err := database.Seed(store); err != nil {
		log.Fatal("failed to seed store", zap.Error(err))
	}
	log.Info("✅ In-memory store seeded")

	hub := websocket.NewHub(log.Named("ws"))
	go hub.Run(ctx)

	opts := services.Options{
		Tokens:    services.TokenConfig{Secret: []byte(settings.JWTSecret), Expiry: settings.JWTExpiry},
		Publisher: hub,
	}
	if settings.CloudinaryURL != "" {
		uploader, err := services.NewCloudinaryUploader(settings.CloudinaryURL)
		if err != nil {
			log.Warn("cloudinary disabled", zap.Error(err))
		} else {
			opts.Uploader = uploader
		}
	}
	sim := services.NewSimulator(settings.MockLatency, log.Named("delay"))
	svc := services.New(store, sim, log, opts)

	reminder := jobs.NewSessionReminder(svc, nil, settings.ReminderWindow, log.Named("jobs"))
	if mailer := notifications.NewBrevoService(settings.BrevoAPIKey, settings.EmailSender, settings.EmailSenderName, log.Named("email")); mailer != nil {
		reminder.Mailer = mailer
	}
	c := cron.New()
	if _, err := c.AddJob(settings.ReminderSchedule, reminder); err != nil {
		log.Fatal("invalid reminder schedule", zap.String("schedule", settings.ReminderSchedule), zap.Error(err))
	}
	if _, err := c.AddJob("*/5 * * * *", jobs.NewReportReminder(svc, log.Named("jobs"))); err != nil {
		log.Fatal("failed to schedule report reminder", zap.Error(err))
	}
	c.Start()
	log.Info("✅ Cron jobs scheduled", zap.String("reminder_schedule", settings.ReminderSchedule))

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       settings.AppName,
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			log.Error("request error", zap.Error(err), zap.String("path", c.Path()), zap.String("method", c.Method()))
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  settings.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(monitoring.Middleware())
	app.Use(middleware.RateLimit(settings.RateLimitPerMinute, settings.RateLimitBurst, log.Named("ratelimit")))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to " + settings.AppName + " API",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", monitoring.Handler())

	routes.Setup(app, handlers.New(svc, hub, []byte(settings.JWTSecret), log.Named("http")), []byte(settings.JWTSecret))

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		<-c.Stop().Done()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info("✅ Server is running", zap.String("port", settings.Port))
	if err := app.Listen(":" + settings.Port); err != nil {
		log.Fatal("🔥 Server failed to start", zap.Error(err))
	}
}
