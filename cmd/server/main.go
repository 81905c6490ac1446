package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/live-auction/internal/auction"    // Auction engine
	"github.com/iliyamo/live-auction/internal/config"     // Internal config loader
	"github.com/iliyamo/live-auction/internal/database"   // MySQL pool constructor
	"github.com/iliyamo/live-auction/internal/handler"    // HTTP handlers
	"github.com/iliyamo/live-auction/internal/middleware" // Rate limiting and caching
	"github.com/iliyamo/live-auction/internal/queue"      // Settlement event consumer
	"github.com/iliyamo/live-auction/internal/repository" // Data access layer
	"github.com/iliyamo/live-auction/internal/router"     // Route registration
	queue_publisher "github.com/iliyamo/live-auction/internal/service"
)

func main() {
	_ = godotenv.Load() // best effort; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	itemRepo := repository.NewItemRepo(db)
	teamRepo := repository.NewTeamRepo(db)
	bidRepo := repository.NewBidRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	engine := auction.NewEngine(db, itemRepo, teamRepo, bidRepo, saleRepo, queue_publisher.New())

	authHandler := handler.NewAuthHandler(cfg)
	adminHandler := handler.NewAdminHandler(itemRepo, teamRepo, engine, cfg.BcryptCost)
	bidHandler := handler.NewBidHandler(teamRepo, engine)
	publicHandler := handler.NewPublicHandler(itemRepo, teamRepo, bidRepo, saleRepo, engine)

	// Redis backs the rate limiter and the short-TTL response cache for
	// the polled dashboard views.  A nil client disables both and the
	// service keeps working against the database alone.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, publicHandler, cache)
	router.RegisterBidding(e, bidHandler, rateLimit)
	router.RegisterAdmin(e, authHandler, adminHandler, cfg.JWTSecret, rateLimit)

	// Record settlement outcomes from the broker into logs/auction.log.
	go func() {
		if err := queue.StartAuctionConsumer(); err != nil {
			log.Printf("auction consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
