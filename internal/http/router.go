// README: Route registration, wiring gin handlers behind the
// Logging/Recovery middleware pair.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"matchd/internal/http/handlers"
	"matchd/internal/http/middleware"
	"matchd/internal/modules/matching"
	"matchd/internal/routing"
)

// NewRouter builds the gin engine exposing the rider/driver lifecycle,
// the routing control surface, and a liveness probe.
func NewRouter(logger *slog.Logger, matchEngine *matching.Engine, routeEngine *routing.Engine) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logging(logger))

	riders := handlers.NewRiderHandler(matchEngine)
	drivers := handlers.NewDriverHandler(matchEngine)
	route := handlers.NewRoutingHandler(routeEngine)

	r.GET("/health", handlers.Health)

	r.POST("/riders", riders.Add)
	r.POST("/riders/:id/cancel", riders.Cancel)

	r.POST("/drivers", drivers.Add)
	r.POST("/drivers/:id/accept", drivers.Accept)
	r.POST("/drivers/:id/cancel", drivers.Cancel)

	r.GET("/route", route.Route)
	r.POST("/edges/:id", route.UpdateByID)
	r.POST("/edges/by-nodes", route.UpdateByNodes)
	r.POST("/edges/by-coordinate", route.UpdateByCoordinate)

	return r
}
