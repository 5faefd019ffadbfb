package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go-content-export/internal/export"
	"go-content-export/internal/model"
	"go-content-export/internal/store"
	"go-content-export/pkg/utils"

	"github.com/google/uuid"
)

// CreateExport creates and starts a new export run
// @Summary Create a new export run
// @Description Start a per-user content export run with the provided configuration
// @Tags exports
// @Accept json
// @Produce json
// @Param spec body model.ExportJobSpec true "Export run configuration"
// @Success 200 {object} map[string]interface{} "Export run created"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports [post]
func CreateExport(w http.ResponseWriter, r *http.Request) {
	spec := model.DefaultExportSpec()
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if spec.MinItemCount < 0 || spec.Workers < 0 {
		http.Error(w, "Counts must be non-negative", http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()

	if err := store.SaveRun(runID, spec); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	// Run asynchronously; outcome lands in the store.
	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(spec.JobTimeout))
	go func() {
		defer cancel()
		if _, err := export.Run(ctx, runID, spec); err != nil {
			store.SaveRunError(runID, err)
		}
	}()

	resp := map[string]interface{}{
		"message":   "Export run created successfully!",
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListExports retrieves all export runs
// @Summary List all export runs
// @Description Get all export runs with their current status
// @Tags exports
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "List of export runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports [get]
func ListExports(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch export runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetExport retrieves a specific export run
// @Summary Get export run
// @Description Retrieve the spec and status of one export run
// @Tags exports
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Export run details"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /exports/{id} [get]
func GetExport(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "")
	if !ok {
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetExportOutcomes retrieves per-user outcomes for an export run
// @Summary Get per-user outcomes
// @Description Retrieve the per-user success/failure outcomes of an export run
// @Tags exports
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Per-user outcomes"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports/{id}/outcomes [get]
func GetExportOutcomes(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/outcomes")
	if !ok {
		return
	}

	outcomes, err := store.GetUserOutcomes(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve outcomes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":   runID,
		"outcomes": outcomes,
		"count":    len(outcomes),
	})
}

// GetExportErrors retrieves run-level errors for an export run
// @Summary Get export run errors
// @Description Retrieve fatal errors recorded for an export run
// @Tags exports
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports/{id}/errors [get]
func GetExportErrors(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/errors")
	if !ok {
		return
	}

	errors, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"errors": errors,
		"count":  len(errors),
	})
}

// DownloadArchive serves a finished per-user archive
// @Summary Download archive
// @Description Download one user's zip archive produced by an export run
// @Tags files
// @Accept json
// @Produce application/octet-stream
// @Param filename path string true "Archive file name"
// @Success 200 {file} file "Archive download"
// @Failure 400 {object} map[string]interface{} "Invalid URL format"
// @Failure 404 {object} map[string]interface{} "Archive not found"
// @Router /download/{filename} [get]
func DownloadArchive(w http.ResponseWriter, r *http.Request) {
	// URL format: /api/v1/download/filename
	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) < 4 {
		http.Error(w, "Invalid URL format", http.StatusBadRequest)
		return
	}
	fileName := pathParts[3]

	archivePath := fmt.Sprintf("%s/%s", model.DefaultExportSpec().ArchiveDir, fileName)
	if _, err := os.Stat(archivePath); os.IsNotExist(err) {
		http.Error(w, "Archive not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
	w.Header().Set("Content-Type", "application/zip")
	http.ServeFile(w, r, archivePath)
}

// Healthz reports process liveness
// @Summary Health check
// @Description Liveness probe for the export API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "OK"
// @Router /healthz [get]
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// runIDFromPath extracts the run ID from /api/v1/exports/{id}<suffix>.
func runIDFromPath(w http.ResponseWriter, r *http.Request, suffix string) (string, bool) {
	path := r.URL.Path
	prefix := "/api/v1/exports/"

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}

	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" || strings.Contains(runID, "/") {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return "", false
	}
	return runID, true
}
