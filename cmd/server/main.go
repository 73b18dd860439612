package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/feedhub/configs"
	"github.com/maheshrc27/feedhub/internal/api/handlers"
	"github.com/maheshrc27/feedhub/internal/api/middleware"
	"github.com/maheshrc27/feedhub/internal/providers"
	"github.com/maheshrc27/feedhub/internal/repository"
	"github.com/maheshrc27/feedhub/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	platformConfigRepo := repository.NewPlatformConfigRepository(db)
	tokenRepo := repository.NewOAuthTokenRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	postCacheRepo := repository.NewPostCacheRepository(db)

	registry := providers.DefaultRegistry()
	stateStore := service.NewStateStore(10 * time.Minute)

	connectionService := service.NewConnectionService(*cfg, registry, stateStore, platformConfigRepo, tokenRepo, feedRepo)
	configService := service.NewConfigService(registry, platformConfigRepo)
	feedService := service.NewFeedService(*cfg, registry, feedRepo, tokenRepo, postCacheRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	connect := handlers.NewConnectHandler(connectionService, *cfg)
	app.Get("/auth/:platform", authMiddleware.AuthMiddleware(), connect.BeginAuth)
	app.Get("/auth/:platform/callback", authMiddleware.AuthMiddleware(), connect.Callback)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	api.Get("/connections", connect.ListConnections)
	api.Post("/connections/disconnect", connect.Disconnect)

	platformConfig := handlers.NewConfigHandler(configService)
	api.Get("/platform/config", platformConfig.GetConfig)
	api.Post("/platform/config/update", platformConfig.SaveConfig)

	feed := handlers.NewFeedHandler(feedService)
	api.Get("/feeds", feed.ListFeeds)
	api.Post("/feeds/create", feed.CreateFeed)
	api.Post("/feeds/remove", feed.RemoveFeed)
	api.Get("/feeds/refresh", feed.RefreshFeed)
	api.Get("/feeds/posts", feed.CachedPosts)

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
