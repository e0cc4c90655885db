package main

import (
	"log"

	httpapi "parques/internal/api/http"
	"parques/internal/api/ws"
	"parques/internal/config"
	"parques/internal/room"
	"parques/internal/store"
)

// @title Parqués Game API
// @version 1.0
// @description Server-authoritative Parqués rules engine (Go + Gin)
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mem := store.NewMemoryStore()
	hub := ws.NewHub()
	rm := room.NewManager(mem, cfg, hub)
	hub.SetService(rm)

	r := httpapi.SetupRouter(rm, cfg, hub)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
