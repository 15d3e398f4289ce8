package api

import (
	"nexbe-contract/docs"
	"nexbe-contract/internal/api/handlers"
	"nexbe-contract/pkg/auth"
	"nexbe-contract/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	contractHandler *handlers.ContractHandler,
	catalogHandler *handlers.CatalogHandler,
	chatHandler *handlers.ChatHandler,
	leadHandler *handlers.LeadHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Widget routes (public): chat answers and callback leads
	app.Post("/api/v1/chat", chatHandler.Respond)
	app.Post("/api/v1/leads", leadHandler.CreateLead)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Get("/catalog", catalogHandler.ListProducts)
	protected.Get("/leads", leadHandler.ListLeads)

	contracts := protected.Group("/contracts")
	contracts.Post("", contractHandler.CreateContract)
	contracts.Get("", contractHandler.ListContracts)
	contracts.Get("/:id", contractHandler.GetContract)
	contracts.Put("/:id/pricing", contractHandler.UpdatePricing)
	contracts.Post("/:id/generate", contractHandler.GenerateContract)
	contracts.Get("/:id/pdf", contractHandler.DownloadPDF)
	contracts.Post("/:id/signature", contractHandler.SendForSignature)

	return app
}
