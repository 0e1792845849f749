package router

import (
	"github.com/labstack/echo/v4"

	"cropmaster/pkg/farmland/controller"
	"cropmaster/pkg/metrics"
)

func New(
	e *echo.Echo,
	landCtrl controller.FarmlandController,
	healthCtrl interface{ Health(echo.Context) error },
	withMetrics bool,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	if withMetrics {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	// farmer-scoped queries
	f := e.Group("/farmers/:nic/farmlands")
	f.GET("", landCtrl.ByFarmer)
	f.GET("/cropped", landCtrl.CropLand)
	f.GET("/uncropped", landCtrl.UncropLand)

	g := e.Group("/farmlands")
	g.GET("/unassigned", landCtrl.Unassigned)
	g.GET("/assigned", landCtrl.Assigned)
	g.POST("", landCtrl.Create)
	g.GET("/:id", landCtrl.Get)
	g.PUT("/:id/farmer", landCtrl.AssignFarmer)
	g.DELETE("/:id/farmer", landCtrl.ReleaseLand)
	g.PUT("/:id/crop", landCtrl.PlantCrop)
	g.DELETE("/:id/crop", landCtrl.ClearCrop)
	return e
}
