package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go-content-export/internal/model"
	"go-content-export/internal/store"
	"go-content-export/pkg/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "api_test.db")))
	r := router.New()
	RegisterRoutes(r)
	return r.Handler()
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateExportRejectsBadPayloads(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/exports", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/exports", strings.NewReader(`{"minItemCount": -1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetExportNotFound(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/no-such-run", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetExportEmptyRunID(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetExportAndList(t *testing.T) {
	h := newTestRouter(t)

	spec := model.DefaultExportSpec()
	spec.MinItemCount = 7
	require.NoError(t, store.SaveRun("run-1", spec))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/run-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var run map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, "run-1", run["id"])
	assert.Equal(t, "pending", run["status"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0]["id"])
}

func TestGetExportOutcomes(t *testing.T) {
	h := newTestRouter(t)

	require.NoError(t, store.SaveRun("run-1", model.DefaultExportSpec()))
	require.NoError(t, store.SaveUserOutcome("run-1", model.UserOutcome{
		Username: "alice", Status: model.StatusSucceeded, ItemCount: 15,
	}))
	require.NoError(t, store.SaveUserOutcome("run-1", model.UserOutcome{
		Username: "bob", Status: model.StatusFailed, Error: "assemble archive: disk full",
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/run-1/outcomes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID    string              `json:"run_id"`
		Outcomes []model.UserOutcome `json:"outcomes"`
		Count    int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "run-1", resp.RunID)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "alice", resp.Outcomes[0].Username)
}

func TestGetExportErrors(t *testing.T) {
	h := newTestRouter(t)

	require.NoError(t, store.SaveRun("run-1", model.DefaultExportSpec()))
	require.NoError(t, store.SaveRunError("run-1", assert.AnError))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/run-1/errors", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Errors []string `json:"errors"`
		Count  int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, assert.AnError.Error(), resp.Errors[0])
}

func TestDownloadArchiveNotFound(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/download/nobody.zip", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
