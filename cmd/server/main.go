package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/repair-workshop/internal/archiver"
	"github.com/iliyamo/repair-workshop/internal/config"
	"github.com/iliyamo/repair-workshop/internal/database"
	"github.com/iliyamo/repair-workshop/internal/handler"
	"github.com/iliyamo/repair-workshop/internal/middleware"
	"github.com/iliyamo/repair-workshop/internal/queue"
	"github.com/iliyamo/repair-workshop/internal/repository"
	"github.com/iliyamo/repair-workshop/internal/router"
	"github.com/iliyamo/repair-workshop/internal/service"
	"github.com/iliyamo/repair-workshop/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	// The stores take nil repositories when no backend is reachable and
	// then serve the seeded local tier.
	var (
		catalogRepo  store.CatalogRepository
		partRepo     store.SparePartRepository
		repairRepo   store.RepairRepository
		settingsRepo store.SettingsRepository
	)
	if !cfg.BackendConfigured() {
		log.Printf("backend not configured, running in local fallback mode")
	} else {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Printf("database unavailable, running in local fallback mode: %v", err)
		} else {
			catalogRepo = repository.NewCatalogRepo(db)
			partRepo = repository.NewSparePartRepo(db)
			repairRepo = repository.NewRepairRepo(db)
			settingsRepo = repository.NewSettingsRepo(db)
		}
	}

	events := service.NewPublisher()
	catalog := store.NewCatalog(catalogRepo)
	inventory := store.NewInventory(partRepo, catalog, events)
	repairs := store.NewRepairs(repairRepo, catalog, inventory, events)
	settings := store.NewSettings(settingsRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go archiver.New(repairs).Run(ctx)
	go queue.StartEventsConsumer()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache and rate limiting disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e, router.Handlers{
		Health:    &handler.HealthHandler{Stores: []handler.Degradable{catalog, inventory, repairs, settings}},
		Catalog:   &handler.CatalogHandler{Store: catalog},
		Inventory: &handler.InventoryHandler{Store: inventory},
		Repairs:   &handler.RepairHandler{Store: repairs},
		Settings:  &handler.SettingsHandler{Store: settings},
		Dashboard: &handler.DashboardHandler{Store: repairs},
	}, rateLimit, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
