package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/satari/satari-api/internal/config"
	"github.com/satari/satari-api/internal/database"
	"github.com/satari/satari-api/internal/handlers"
	satarimw "github.com/satari/satari-api/internal/middleware"
	"github.com/satari/satari-api/internal/services"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	workspaceService := services.NewWorkspaceService(db)
	collectorService := services.NewCollectorService(db)
	formService := services.NewFormService(db)

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, userService, jwtService)
	collectorHandler := handlers.NewCollectorHandler(collectorService, workspaceService, userService, jwtService)
	collectHandler := handlers.NewCollectHandler(collectorService, formService, workspaceService, jwtService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(satarimw.RequestLogger())

	app.Get("/", func(c *drift.Context) {
		c.HTML(200, "Ok")
	})

	app.Post("/signup", authHandler.Signup)
	app.Post("/signin", authHandler.Signin)
	app.Post("/login-with-token", authHandler.TokenSignin)

	app.Post("/create-workspace", workspaceHandler.Create)
	app.Post("/fetch-user-workspaces", workspaceHandler.Fetch)
	app.Post("/add-manager-to-workspace", workspaceHandler.AddManager)
	app.Post("/add-team-member-to-workspace", workspaceHandler.AddTeamMember)

	app.Post("/create-collector", collectorHandler.Create)
	app.Post("/fetch-collectors", collectorHandler.Fetch)
	app.Post("/delete-collector", collectorHandler.Delete)

	app.Post("/collect-form-data", collectHandler.CollectFormData)
	app.Post("/collect-form-through-satari-link", collectHandler.CollectFormThroughLink)
	app.Post("/fetch-collected-forms", collectHandler.FetchCollectedForms)

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			if err := tokenService.CleanupExpired(context.Background()); err != nil {
				log.Warn().Err(err).Msg("token cleanup failed")
			}
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := app.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
}
