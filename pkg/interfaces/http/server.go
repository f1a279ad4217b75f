// Package http exposes the site services over a Fiber REST API.
package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/borderlesspc7/281-carlos/pkg/application/services/approval"
	"github.com/borderlesspc7/281-carlos/pkg/application/services/orchestration"
	"github.com/borderlesspc7/281-carlos/pkg/application/services/site"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/config"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/totvs"
)

// Services are the application services behind the routes
type Services struct {
	Sites     *site.Service
	Approvals *approval.Service
	Planning  *orchestration.PlanningOrchestrator
	TOTVS     *totvs.Client
}

// Server is the HTTP API
type Server struct {
	app      *fiber.App
	address  string
	services Services
}

// NewServer builds the Fiber app and registers every route
func NewServer(server config.ServerConfig, auth config.AuthConfig, services Services) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "obra",
		BodyLimit:    server.BodyLimit,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	corsConfig := cors.Config{}
	if len(server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = strings.Join(server.AllowedOrigins, ",")
	}
	app.Use(cors.New(corsConfig))

	s := &Server{app: app, address: server.Address, services: services}
	s.registerRoutes(JWTMiddleware([]byte(auth.JWTSecret)))
	return s
}

// App returns the underlying Fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called
func (s *Server) Listen() error {
	return s.app.Listen(s.address)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes(authenticate fiber.Handler) {
	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return success(c, fiber.Map{"service": "obra"})
	})

	// --- Public approval links ---
	approvals := api.Group("/approvals")
	approvals.Post("/contracts/:id", s.handleDecideContract)
	approvals.Post("/checklists/:id", s.handleDecideChecklist)

	// --- ERP proxy ---
	api.Options("/totvs/stock-levels", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	api.All("/totvs/stock-levels", authenticate, s.handleStockLevels)

	// --- Sites ---
	sites := api.Group("/sites", authenticate)
	sites.Get("/", s.handleListSites)
	sites.Post("/", s.handleCreateSite)
	sites.Get("/:siteId", s.requireSiteOwner, s.handleGetSite)

	sites.Get("/:siteId/stock", s.requireSiteOwner, s.handleListStock)
	sites.Post("/:siteId/stock", s.requireSiteOwner, s.handleAddStock)
	sites.Delete("/:siteId/stock/:id", s.requireSiteOwner, s.handleDeleteStock)

	sites.Get("/:siteId/kits", s.requireSiteOwner, s.handleListKits)
	sites.Post("/:siteId/kits", s.requireSiteOwner, s.handleAddKit)
	sites.Delete("/:siteId/kits/:id", s.requireSiteOwner, s.handleDeleteKit)

	sites.Get("/:siteId/remaining", s.requireSiteOwner, s.handleGetRemaining)
	sites.Put("/:siteId/remaining", s.requireSiteOwner, s.handleSaveRemaining)
	sites.Delete("/:siteId/remaining", s.requireSiteOwner, s.handleClearRemaining)

	sites.Get("/:siteId/units", s.requireSiteOwner, s.handleListUnits)
	sites.Post("/:siteId/units", s.requireSiteOwner, s.handleAddUnit)
	sites.Delete("/:siteId/units/:id", s.requireSiteOwner, s.handleDeleteUnit)
	sites.Get("/:siteId/units/:unitId/items", s.requireSiteOwner, s.handleListUnitItems)
	sites.Post("/:siteId/units/:unitId/items", s.requireSiteOwner, s.handleAddUnitItem)

	sites.Get("/:siteId/budgets", s.requireSiteOwner, s.handleListBudgets)
	sites.Put("/:siteId/budgets/:unitId", s.requireSiteOwner, s.handleSetBudget)
	sites.Delete("/:siteId/budgets/:id", s.requireSiteOwner, s.handleDeleteBudget)

	sites.Post("/:siteId/productions", s.requireSiteOwner, s.handleRecordProduction)
	sites.Post("/:siteId/measurements", s.requireSiteOwner, s.handleRecordMeasurement)

	sites.Get("/:siteId/analysis/kits", s.requireSiteOwner, s.handleAnalyzeKits)
	sites.Get("/:siteId/cashflow", s.requireSiteOwner, s.handleCashFlow)
	sites.Get("/:siteId/progress", s.requireSiteOwner, s.handleProgress)
	sites.Get("/:siteId/validation", s.requireSiteOwner, s.handleValidate)

	sites.Get("/:siteId/contracts", s.requireSiteOwner, s.handleListContracts)
	sites.Post("/:siteId/contracts", s.requireSiteOwner, s.handleCreateContract)

	sites.Get("/:siteId/checklists", s.requireSiteOwner, s.handleListChecklists)
	sites.Post("/:siteId/checklists", s.requireSiteOwner, s.handleCreateChecklist)
	sites.Get("/:siteId/checklists/:id/document", s.requireSiteOwner, s.handleChecklistDocument)
	sites.Delete("/:siteId/checklists/:id", s.requireSiteOwner, s.handleDeleteChecklist)
}
