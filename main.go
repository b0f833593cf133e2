package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"chirper/src/config"
	"chirper/src/controllers"
	"chirper/src/lib"
	"chirper/src/media"
	"chirper/src/middleware"
	"chirper/src/routes"
	"chirper/src/services"
	"chirper/src/store"
)

func main() {
	cfg, err := config.Read()
	if err != nil {
		logrus.Fatalf("Failed to read configuration: %v", err)
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := store.Connect(ctx, cfg.Mongo.URL, cfg.Mongo.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := store.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalf("Failed to create indexes: %v", err)
	}
	logger.Info("Connected to MongoDB")

	mediaStore, err := media.New(cfg.S3)
	if err != nil {
		logger.Fatalf("Failed to connect to object store: %v", err)
	}

	users := store.NewMongoUserStore(db)
	posts := store.NewMongoPostStore(db)
	notifications := store.NewMongoNotificationStore(db)

	tokens := lib.NewTokenManager(cfg.JWTSecret, lib.SessionValidity)

	notificationService := services.NewNotificationService(notifications, users, logger)
	authService := services.NewAuthService(users, tokens)
	userService := services.NewUserService(users, notificationService, mediaStore, logger)
	postService := services.NewPostService(posts, users, notificationService, mediaStore, logger)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	protect := middleware.ProtectRoute(users, tokens)
	production := cfg.IsProduction()

	routes.AuthRoutes(app, controllers.NewAuthController(authService, logger, production), protect)
	routes.UserRoutes(app, controllers.NewUserController(userService, logger, production), protect)
	routes.PostRoutes(app, controllers.NewPostController(postService, logger, production), protect)
	routes.NotificationRoutes(app, controllers.NewNotificationController(notificationService, logger, production), protect)

	logger.Infof("Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
