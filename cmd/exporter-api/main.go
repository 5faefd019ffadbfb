package main

import (
	"log"

	"go-content-export/internal/api"
	"go-content-export/internal/store"
	"go-content-export/pkg/router"

	"github.com/kelseyhightower/envconfig"
)

type config struct {
	DBPath string `envconfig:"DB_PATH" default:"itempool.db"`
	Addr   string `envconfig:"ADDR" default:":8080"`
}

func main() {
	var cfg config
	if err := envconfig.Process("exporter", &cfg); err != nil {
		log.Fatal(err)
	}

	if err := store.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	r := router.New()
	api.RegisterRoutes(r)
	r.Start(cfg.Addr)
}
