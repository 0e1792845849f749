package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cropmaster/database"
	"cropmaster/entities"
)

func serveHealth(t *testing.T, h *HealthCtrl) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthOK(t *testing.T) {
	db, err := database.Open(database.MemoryPath, zap.NewNop())
	require.NoError(t, err)

	code, body := serveHealth(t, NewHealthCtrl(db))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["status"].(map[string]any)["ok"])
	assert.Equal(t, true, body["checks"].(map[string]any)["schema"].(map[string]any)["ok"])
}

func TestHealthMissingIndex(t *testing.T) {
	db, err := database.Open(database.MemoryPath, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropIndex(&entities.Farmland{}, queryIndex))

	code, body := serveHealth(t, NewHealthCtrl(db))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	schema := body["checks"].(map[string]any)["schema"].(map[string]any)
	assert.Equal(t, false, schema["ok"])
	assert.Contains(t, schema["err"], queryIndex)
}

func TestHealthClosedDB(t *testing.T) {
	db, err := database.Open(database.MemoryPath, zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	code, body := serveHealth(t, NewHealthCtrl(db))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	dbCheck := body["checks"].(map[string]any)["database"].(map[string]any)
	assert.Contains(t, dbCheck["err"], "ping")
}

func TestHealthNilDB(t *testing.T) {
	code, _ := serveHealth(t, NewHealthCtrl(nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
