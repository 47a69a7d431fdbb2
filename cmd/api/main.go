package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	pg "pets-app/internal/adapters/storage/postgres"
	"pets-app/internal/platform/config"
	"pets-app/internal/platform/logger"
	"pets-app/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logg := logger.NewFromEnv()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer db.Close()
	}

	r := router.NewRouter(router.Options{DB: db, Log: logg})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logg.Info("starting server", map[string]any{"addr": addr, "env": cfg.Env})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
