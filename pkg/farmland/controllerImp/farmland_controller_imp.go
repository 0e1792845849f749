package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cropmaster/entities"
	"cropmaster/pkg/farmland/controller"
	"cropmaster/pkg/farmland/service"
)

type FarmlandCtrl struct {
	s   service.FarmlandService
	log *zap.Logger
}

var _ controller.FarmlandController = (*FarmlandCtrl)(nil)

func New(s service.FarmlandService, log *zap.Logger) *FarmlandCtrl {
	return &FarmlandCtrl{s: s, log: log}
}

type createReq struct {
	NIC       *string `json:"nic"`
	CropID    int     `json:"crop_id"`
	Location  string  `json:"location"`
	AreaAcres float64 `json:"area_acres"`
}

type assignReq struct {
	NIC string `json:"nic"`
}

type plantReq struct {
	CropID int `json:"crop_id"`
}

// fail maps service errors to HTTP statuses. Storage errors are logged and
// surface as a bare 500 so driver details stay out of responses.
func (h *FarmlandCtrl) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		h.log.Error("farmland request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

func (h *FarmlandCtrl) list(c echo.Context, out []entities.Farmland, err error) error {
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FarmlandCtrl) CropLand(c echo.Context) error {
	out, err := h.s.FindCropLand(c.Request().Context(), c.Param("nic"))
	return h.list(c, out, err)
}

func (h *FarmlandCtrl) UncropLand(c echo.Context) error {
	out, err := h.s.FindUncropLand(c.Request().Context(), c.Param("nic"))
	return h.list(c, out, err)
}

func (h *FarmlandCtrl) ByFarmer(c echo.Context) error {
	out, err := h.s.FindFarmlandByFarmer(c.Request().Context(), c.Param("nic"))
	return h.list(c, out, err)
}

func (h *FarmlandCtrl) Unassigned(c echo.Context) error {
	out, err := h.s.FindFarmlandNoNic(c.Request().Context())
	return h.list(c, out, err)
}

func (h *FarmlandCtrl) Assigned(c echo.Context) error {
	out, err := h.s.FindFarmlandNic(c.Request().Context())
	return h.list(c, out, err)
}

func (h *FarmlandCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	f := &entities.Farmland{NIC: req.NIC, CropID: req.CropID, Location: req.Location, AreaAcres: req.AreaAcres}
	out, err := h.s.Register(c.Request().Context(), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *FarmlandCtrl) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.s.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FarmlandCtrl) AssignFarmer(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	return h.one(c)(h.s.AssignFarmer(c.Request().Context(), id, req.NIC))
}

func (h *FarmlandCtrl) ReleaseLand(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return h.one(c)(h.s.ReleaseLand(c.Request().Context(), id))
}

func (h *FarmlandCtrl) PlantCrop(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req plantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	return h.one(c)(h.s.PlantCrop(c.Request().Context(), id, req.CropID))
}

func (h *FarmlandCtrl) ClearCrop(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return h.one(c)(h.s.ClearCrop(c.Request().Context(), id))
}

func (h *FarmlandCtrl) one(c echo.Context) func(*entities.Farmland, error) error {
	return func(f *entities.Farmland, err error) error {
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(http.StatusOK, f)
	}
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
