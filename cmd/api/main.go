package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/firestore"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/identity"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Mode).
		Str("auth", cfg.Auth.Mode).
		Msg("iniciando aplicación")

	// Document Store: Firestore REST o memoria (desarrollo).
	var store repository.DocumentStore
	switch cfg.Store.Mode {
	case "memory":
		store = memory.NewStore()
	default:
		store, err = firestore.NewStore(firestore.Config{
			ProjectID:   cfg.Firebase.ProjectID,
			DatabaseID:  cfg.Firebase.DatabaseID,
			BearerToken: cfg.Firebase.BearerToken,
			BaseURL:     cfg.Firebase.StoreURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Firestore")
		}
	}

	// Identity Gateway: Identity Toolkit o gateway local autocontenido.
	var gateway ports.IdentityGateway
	switch cfg.Auth.Mode {
	case "local":
		gateway = identity.NewLocalGateway(store, identity.LocalConfig{
			JWTSecret:  cfg.Auth.JWTSecret,
			Issuer:     cfg.Auth.Issuer,
			ExpMinutes: cfg.Auth.Expiration,
		})
	default:
		gateway = identity.NewHTTPGateway(identity.HTTPConfig{
			WebAPIKey: cfg.Firebase.WebAPIKey,
			BaseURL:   cfg.Firebase.AuthURL,
		})
	}

	authUC := auth.NewAuthUseCase(gateway, store)
	itemUC := usecase.NewItemUseCase(store)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:  authUC,
		ItemUC:  itemUC,
		Gateway: gateway,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
