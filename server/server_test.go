package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reelforge/reelforge/pkg/catalog"
	"github.com/reelforge/reelforge/pkg/scheduler"
	"github.com/reelforge/reelforge/pkg/sse"
	"github.com/reelforge/reelforge/pkg/store"
	"github.com/reelforge/reelforge/pkg/store/sqlite"
	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func newTestServer(t *testing.T, ctx context.Context) (*Server, store.Store) {
	t.Helper()

	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Init(ctx))

	reg, err := scheduler.New(nil)
	require.NoError(t, err)

	return New(Config{
		Logger:    zap.NewNop().Sugar(),
		Store:     s,
		Catalog:   catalog.New(s),
		Scheduler: reg,
		Activity:  sse.New(),
	}), s
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) GenericResponse {
	t.Helper()
	var resp GenericResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestServer_Healthz(t *testing.T) {
	s, _ := newTestServer(t, context.Background())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	assert.Equal(t, "ok", resp.Response)
}

func TestServer_CreateAndGetMovie(t *testing.T) {
	s, _ := newTestServer(t, context.Background())

	body := `{"Title":"Arrival","Year":2016,"MinimumAvailability":"released","Monitored":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/library/movies", strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeResponse(t, rr).Response.(map[string]any)
	id := int64(created["ID"].(float64))
	assert.Equal(t, int64(1), id)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/library/movies/1", nil)
	rr = httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	got := decodeResponse(t, rr).Response.(map[string]any)
	assert.Equal(t, "Arrival", got["Title"])
}

func TestServer_GetMovie_NotFound(t *testing.T) {
	s, _ := newTestServer(t, context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/library/movies/999", nil)
	rr := httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_ListWorkers(t *testing.T) {
	s, _ := newTestServer(t, context.Background())
	require.NoError(t, s.scheduler.Register(scheduler.Config{
		ID:             "probe",
		Name:           "probe",
		Interval:       1000000000,
		Run:            func(ctx context.Context) error { return nil },
		SkipInitialRun: true,
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/workers", nil)
	rr := httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	workers := decodeResponse(t, rr).Response.([]any)
	assert.Len(t, workers, 1)
}

func TestServer_Backup_ExportAndPreview(t *testing.T) {
	s, st := newTestServer(t, context.Background())
	_, err := s.catalog.CreateMovie(context.Background(), model.Movie{
		Title:               "Arrival",
		Year:                2016,
		MinimumAvailability: catalog.AvailabilityReleased,
		Monitored:           true,
	})
	require.NoError(t, err)
	_ = st

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/backup/preview", nil)
	rr := httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	meta := decodeResponse(t, rr).Response.([]any)
	assert.NotEmpty(t, meta)
}

func TestServer_ListMovies_FiltersAndPages(t *testing.T) {
	s, _ := newTestServer(t, context.Background())

	for _, m := range []model.Movie{
		{Title: "Arrival", Year: 2016, MinimumAvailability: catalog.AvailabilityReleased, Monitored: true},
		{Title: "Heat", Year: 1995, MinimumAvailability: catalog.AvailabilityReleased, Monitored: false},
	} {
		_, err := s.catalog.CreateMovie(context.Background(), m)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/library/movies?monitored=true", nil)
	rr := httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr).Response.(map[string]any)
	assert.EqualValues(t, 1, resp["total"])
	items := resp["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Arrival", items[0].(map[string]any)["Title"])

	req = httptest.NewRequest(http.MethodGet, "/api/v1/library/movies?limit=1&offset=1", nil)
	rr = httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	resp = decodeResponse(t, rr).Response.(map[string]any)
	assert.EqualValues(t, 2, resp["total"])
	assert.Len(t, resp["items"].([]any), 1)
}
