package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, r *Router, method, path string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestExactMatch(t *testing.T) {
	r := New()
	r.GET("/api/v1/exports", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("list"))
	})

	code, body := doRequest(t, r, http.MethodGet, "/api/v1/exports")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "list", body)
}

func TestWildcardSegment(t *testing.T) {
	r := New()
	r.GET("/api/v1/exports/*/outcomes", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("outcomes"))
	})

	code, body := doRequest(t, r, http.MethodGet, "/api/v1/exports/run-42/outcomes")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "outcomes", body)

	code, _ = doRequest(t, r, http.MethodGet, "/api/v1/exports/run-42/errors")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTrailingWildcard(t *testing.T) {
	r := New()
	r.GET("/api/v1/download/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("file"))
	})

	code, _ := doRequest(t, r, http.MethodGet, "/api/v1/download/alice.zip")
	assert.Equal(t, http.StatusOK, code)
}

func TestMethodNotAllowed(t *testing.T) {
	r := New()
	r.GET("/api/v1/exports", func(w http.ResponseWriter, req *http.Request) {})

	code, _ := doRequest(t, r, http.MethodDelete, "/api/v1/exports")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestNotFound(t *testing.T) {
	r := New()

	code, _ := doRequest(t, r, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRegistrationOrderPrecedence(t *testing.T) {
	r := New()
	r.GET("/api/v1/exports/*/outcomes", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("outcomes"))
	})
	r.GET("/api/v1/exports/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("run"))
	})

	_, body := doRequest(t, r, http.MethodGet, "/api/v1/exports/run-42/outcomes")
	assert.Equal(t, "outcomes", body)
	_, body = doRequest(t, r, http.MethodGet, "/api/v1/exports/run-42")
	assert.Equal(t, "run", body)
}

func TestMethodsShareOnePath(t *testing.T) {
	r := New()
	r.GET("/api/v1/exports", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("list"))
	})
	r.POST("/api/v1/exports", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("create"))
	})

	_, body := doRequest(t, r, http.MethodGet, "/api/v1/exports")
	assert.Equal(t, "list", body)
	_, body = doRequest(t, r, http.MethodPost, "/api/v1/exports")
	assert.Equal(t, "create", body)
}
