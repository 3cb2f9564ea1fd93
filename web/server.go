package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/shoestore/config"
	"github.com/shoestore/web/handlers"
	"github.com/shoestore/web/middleware"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer creates a new Fiber server
func NewServer(cfg *config.Config) *Server {
	handlers.UploadDir = cfg.App.UploadDir

	app := fiber.New(fiber.Config{
		AppName: "shoestore",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			logrus.WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
			}).WithError(err).Error("Unhandled request error")
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))
	app.Use(middleware.LoadUser())

	// Uploaded product images
	app.Static("/images", "./images")

	setupRoutes(app)

	return &Server{app: app}
}

// Start starts the server
func (s *Server) Start(port string) error {
	logrus.Infof("Server starting on http://localhost:%s", port)
	return s.app.Listen(":" + port)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App) {
	// Session management
	authGroup := app.Group("/auth")
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/logout", handlers.Logout)
	authGroup.Get("/me", handlers.Me)

	// Product management
	products := app.Group("/products")
	products.Get("/", handlers.ProductList)
	products.Post("/", handlers.ProductCreate)
	products.Get("/:id", handlers.ProductView)
	products.Put("/:id", handlers.ProductUpdate)
	products.Delete("/:id", handlers.ProductDelete)
	products.Post("/:id/image", handlers.ProductUploadImage)

	// Reference tables feeding the product form
	app.Get("/categories", handlers.CategoryList)
	app.Post("/categories", handlers.CategoryCreate)
	app.Get("/manufacturers", handlers.ManufacturerList)
	app.Post("/manufacturers", handlers.ManufacturerCreate)
	app.Get("/suppliers", handlers.SupplierList)
	app.Post("/suppliers", handlers.SupplierCreate)

	// Order management
	orders := app.Group("/orders")
	orders.Get("/", handlers.OrderList)
	orders.Post("/", handlers.OrderCreate)
	orders.Get("/:id", handlers.OrderView)
	orders.Put("/:id", handlers.OrderUpdate)
	orders.Delete("/:id", handlers.OrderDelete)

	// Debug endpoint for SQL logs
	app.Get("/api/debug/sql", handlers.GetSQLLogs)
	app.Delete("/api/debug/sql", handlers.ClearSQLLogs)
}
