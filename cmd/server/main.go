package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rayroman1160/agencyos/internal/auth"
	"github.com/rayroman1160/agencyos/internal/config"
	"github.com/rayroman1160/agencyos/internal/handlers"
	"github.com/rayroman1160/agencyos/internal/service"
	"github.com/rayroman1160/agencyos/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := newLogger(cfg)

	log.Info("Connecting to PostgreSQL...")
	db, err := store.Connect(store.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Failed to close database connection: %v", err)
		}
	}()

	// Stores
	taskStore := store.NewTaskStore(db)
	templateStore := store.NewTemplateStore(db)
	userStore := store.NewUserStore(db)
	clientStore := store.NewClientStore(db)
	dealStore := store.NewDealStore(db)
	fieldStore := store.NewFieldStore(db)

	// Services. Notification dispatch belongs to the sweep binary; the API
	// server never sends mail.
	invalidator := &service.LogInvalidator{Log: log}
	templateService := service.NewTemplateService(templateStore, taskStore, invalidator, log)
	taskService := service.NewTaskService(taskStore, invalidator, log)
	clientService := service.NewClientService(clientStore)
	dealService := service.NewDealService(dealStore, fieldStore, log)
	fieldService := service.NewFieldService(fieldStore)

	// HTTP server
	app := fiber.New(fiber.Config{AppName: "agencyos"})
	app.Use(recover.New())
	app.Use(cors.New())

	h := handlers.New(templateService, taskService, clientService, dealService, fieldService, log)
	h.Register(app, auth.Middleware(userStore))

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
		log.Infof("AgencyOS API listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}
	log.Info("Server shutdown complete")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	if cfg.IsDevelopment() {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
