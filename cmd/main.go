package main

import (
	"log"

	"backend/config"
	"backend/routes"
	"backend/store"
)

func main() {
	cfg := config.Load()
	st := store.New(cfg)

	// fail fast on an unreadable document rather than on first request
	if _, err := st.Load(); err != nil {
		log.Fatalf("failed to open document store: %v", err)
	}

	r := routes.SetupRouter(cfg, st)
	log.Printf("listening on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
