package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC  *auth.AuthUseCase
	ItemUC  *usecase.ItemUseCase
	Gateway ports.IdentityGateway
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Items (protegido, requiere Bearer Token)
	itemHandler := NewItemHandler(deps.ItemUC)
	items := app.Group("/api/items", AuthMiddleware(deps.Gateway))
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	// search va antes de :id para que /items/search no se resuelva como id
	items.Get("/search", itemHandler.Search)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
}
