package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"go-content-export/internal/export"
	"go-content-export/internal/model"
	"go-content-export/internal/store"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

type config struct {
	DBPath   string `envconfig:"DB_PATH" default:"itempool.db"`
	SpecFile string `envconfig:"SPEC_FILE" default:"export.json"`
}

func main() {
	var cfg config
	if err := envconfig.Process("exporter", &cfg); err != nil {
		log.Fatal(err)
	}

	if err := store.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	spec := model.DefaultExportSpec()
	if data, err := os.ReadFile(cfg.SpecFile); err == nil {
		if err := json.Unmarshal(data, &spec); err != nil {
			log.Fatalf("parse %s: %v", cfg.SpecFile, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("read %s: %v", cfg.SpecFile, err)
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, spec); err != nil {
		log.Fatalf("save run: %v", err)
	}

	summary, err := export.Run(context.Background(), runID, spec)
	if err != nil {
		// Fatal run-level error: no per-user work was completed.
		log.Printf("export run failed: %v", err)
		os.Exit(1)
	}

	// Per-user failures are reported above but do not fail the process.
	fmt.Printf("Done: %d/%d users exported\n", summary.Succeeded, summary.RankedUsers)
}
