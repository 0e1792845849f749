package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"cropmaster/entities"
)

const queryIndex = "idx_farmlands_nic_crop"

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// schema confirms the farmlands table and the index backing the nic/crop filters.
func (h *HealthCtrl) schema(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	m := h.db.WithContext(ctx).Migrator()
	if !m.HasTable(&entities.Farmland{}) {
		return check{Err: "farmlands table missing"}
	}
	if !m.HasIndex(&entities.Farmland{}, queryIndex) {
		return check{Err: queryIndex + " missing"}
	}
	return check{OK: true}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	schema := check{Err: "skipped: database down"}
	if db.OK {
		schema = h.schema(ctx)
	}
	ok := db.OK && schema.OK
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, echo.Map{
		"status":     echo.Map{"ok": ok},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     echo.Map{"database": db, "schema": schema},
		"time":       time.Now().Format(time.RFC3339),
	})
}
