package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/avtonomer/platemarket/app/controllers"
	"github.com/avtonomer/platemarket/app/repository"
	"github.com/avtonomer/platemarket/internal/pkg/geolocation"
	"github.com/avtonomer/platemarket/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	v1 := api.Group("/v1")
	v1.Get("/stats", controllers.HandleStats)

	pc := controllers.NewPlateController(repository.GetGlobalRepositories(), geolocation.NewResolver())
	registerPlateRoutes(v1.Group("/license-plates"), pc)
}

// registerPlateRoutes wires the listing endpoints. Literal segments are
// registered before the /:plateID wildcard so "top" and "liked" are never
// captured as a plate id.
func registerPlateRoutes(g fiber.Router, pc *controllers.PlateController) {
	g.Get("/top", pc.HandleTopPlates)
	g.Get("/liked", middleware.RequireAuth, pc.HandleLikedPlates)
	g.Get("/users/:userID", pc.HandlePlatesByUser)

	g.Get("/", pc.HandleListPlates)
	g.Post("/", middleware.RequireAuth, pc.HandleCreatePlate)

	// The doubled prefix is kept from the original route table.
	g.Post("/license-plates/:plateID/top-rating", middleware.RequireAuth, pc.HandleAddTopRating)

	g.Get("/:plateID", pc.HandleGetPlate)
	g.Put("/:plateID", middleware.RequireAuth, pc.HandleUpdatePlate)
	g.Get("/:plateID/price-history", middleware.RequireAuth, pc.HandlePriceHistory)
	g.Post("/:plateID/like", middleware.RequireAuth, pc.HandleToggleLike)
	g.Get("/:plateID/like", middleware.RequireAuth, pc.HandleLikeStatus)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
