package controllerImp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cropmaster/database"
	"cropmaster/entities"
	"cropmaster/pkg/farmland/controllerImp"
	"cropmaster/pkg/farmland/repositoryImp"
	"cropmaster/pkg/farmland/service"
	"cropmaster/pkg/farmland/serviceImp"
	healthCtrlImp "cropmaster/pkg/health/controllerImp"
	"cropmaster/router"
)

func strp(s string) *string { return &s }

func newServer(t *testing.T) (*echo.Echo, service.FarmlandService) {
	t.Helper()
	db, err := database.Open(database.MemoryPath, zap.NewNop())
	require.NoError(t, err)
	svc := serviceImp.NewFarmlandService(repositoryImp.New(db))
	e := router.New(echo.New(), controllerImp.New(svc, zap.NewNop()), healthCtrlImp.NewHealthCtrl(db), true)
	return e, svc
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func landIDs(t *testing.T, rec *httptest.ResponseRecorder) []uint {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out []entities.Farmland
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	ids := make([]uint, 0, len(out))
	for _, f := range out {
		ids = append(ids, f.LandID)
	}
	return ids
}

func seedExample(t *testing.T, svc service.FarmlandService) {
	t.Helper()
	_, err := svc.ImportLands(context.Background(), []entities.Farmland{
		{NIC: strp("123"), CropID: 0},
		{NIC: strp("123"), CropID: 5},
		{CropID: 0},
	})
	require.NoError(t, err)
}

func TestQueryRoutes(t *testing.T) {
	e, svc := newServer(t)
	seedExample(t, svc)

	assert.Equal(t, []uint{2}, landIDs(t, do(t, e, http.MethodGet, "/farmers/123/farmlands/cropped", "")))
	assert.Equal(t, []uint{1}, landIDs(t, do(t, e, http.MethodGet, "/farmers/123/farmlands/uncropped", "")))
	assert.Equal(t, []uint{1, 2}, landIDs(t, do(t, e, http.MethodGet, "/farmers/123/farmlands", "")))
	assert.Equal(t, []uint{3}, landIDs(t, do(t, e, http.MethodGet, "/farmlands/unassigned", "")))
	assert.Equal(t, []uint{1, 2}, landIDs(t, do(t, e, http.MethodGet, "/farmlands/assigned", "")))
}

func TestUnknownFarmerReturnsEmptyArray(t *testing.T) {
	e, svc := newServer(t)
	seedExample(t, svc)

	rec := do(t, e, http.MethodGet, "/farmers/999/farmlands/cropped", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestBlankNICIsBadRequest(t *testing.T) {
	e, svc := newServer(t)
	seedExample(t, svc)

	rec := do(t, e, http.MethodGet, "/farmers/%20/farmlands", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "nic is required")
}

func TestWriteRoutes(t *testing.T) {
	e, _ := newServer(t)

	rec := do(t, e, http.MethodPost, "/farmlands", `{"location":"Kandy","area_acres":2.5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created entities.Farmland
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, uint(1), created.LandID)
	assert.Nil(t, created.NIC)

	rec = do(t, e, http.MethodPut, "/farmlands/1/farmer", `{"nic":"777"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPut, "/farmlands/1/crop", `{"crop_id":4}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []uint{1}, landIDs(t, do(t, e, http.MethodGet, "/farmers/777/farmlands/cropped", "")))

	rec = do(t, e, http.MethodDelete, "/farmlands/1/crop", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{1}, landIDs(t, do(t, e, http.MethodGet, "/farmers/777/farmlands/uncropped", "")))

	rec = do(t, e, http.MethodDelete, "/farmlands/1/farmer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{1}, landIDs(t, do(t, e, http.MethodGet, "/farmlands/unassigned", "")))

	rec = do(t, e, http.MethodGet, "/farmlands/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteRouteErrors(t *testing.T) {
	e, _ := newServer(t)

	cases := []struct {
		name, method, path, body string
		want                     int
	}{
		{"bad json", http.MethodPost, "/farmlands", `{"crop_id":`, http.StatusBadRequest},
		{"negative crop", http.MethodPost, "/farmlands", `{"crop_id":-1}`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/farmlands/abc", "", http.StatusBadRequest},
		{"zero id", http.MethodGet, "/farmlands/0", "", http.StatusBadRequest},
		{"missing", http.MethodGet, "/farmlands/42", "", http.StatusNotFound},
		{"assign missing", http.MethodPut, "/farmlands/42/farmer", `{"nic":"1"}`, http.StatusNotFound},
		{"plant zero", http.MethodPut, "/farmlands/42/crop", `{"crop_id":0}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, e, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

type brokenSvc struct{ service.FarmlandService }

func (brokenSvc) FindFarmlandNic(context.Context) ([]entities.Farmland, error) {
	return nil, errors.New("unable to open database file")
}

func TestStorageErrorIs500(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := echo.New()
	e.GET("/farmlands/assigned", controllerImp.New(brokenSvc{}, zap.New(core)).Assigned)

	rec := do(t, e, http.MethodGet, "/farmlands/assigned", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "database file")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unable to open database file", entries[0].ContextMap()["error"])
}

func TestMetricsRoute(t *testing.T) {
	e, _ := newServer(t)
	rec := do(t, e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
