package api

import (
	"net/http"

	"go-content-export/internal/api/handler"
	"go-content-export/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-content-export/docs" // swagger docs registration
)

func RegisterRoutes(r *router.Router) {
	r.GET("/healthz", handler.Healthz)

	r.POST("/api/v1/exports", handler.CreateExport)
	r.GET("/api/v1/exports", handler.ListExports)
	// More specific routes first
	r.GET("/api/v1/exports/*/outcomes", handler.GetExportOutcomes)
	r.GET("/api/v1/exports/*/errors", handler.GetExportErrors)
	r.GET("/api/v1/download/*", handler.DownloadArchive)
	// Generic run route last
	r.GET("/api/v1/exports/*", handler.GetExport)

	r.GET("/swagger/*", func(w http.ResponseWriter, req *http.Request) {
		httpSwagger.WrapHandler(w, req)
	})
}
