package controller

import "github.com/labstack/echo/v4"

type FarmlandController interface {
	CropLand(c echo.Context) error
	UncropLand(c echo.Context) error
	ByFarmer(c echo.Context) error
	Unassigned(c echo.Context) error
	Assigned(c echo.Context) error

	Create(c echo.Context) error
	Get(c echo.Context) error
	AssignFarmer(c echo.Context) error
	ReleaseLand(c echo.Context) error
	PlantCrop(c echo.Context) error
	ClearCrop(c echo.Context) error
}
