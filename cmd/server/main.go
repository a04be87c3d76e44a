package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/bus-seat-reservation/internal/config"
	"github.com/iliyamo/bus-seat-reservation/internal/database"
	"github.com/iliyamo/bus-seat-reservation/internal/handler"
	"github.com/iliyamo/bus-seat-reservation/internal/middleware"
	"github.com/iliyamo/bus-seat-reservation/internal/queue"
	"github.com/iliyamo/bus-seat-reservation/internal/repository"
	"github.com/iliyamo/bus-seat-reservation/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment
	// directly and the file is absent.
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	userRepo := repository.NewUserRepo(db)
	busRepo := repository.NewBusRepo(db)
	tripRepo := repository.NewTripRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	authHandler := handler.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost)
	ownerHandler := handler.NewOwnerHandler(busRepo, tripRepo)
	publicHandler := handler.NewPublicHandler(busRepo, tripRepo, cfg.Currency)
	customerHandler := handler.NewCustomerHandler(tripRepo, bookingRepo, busRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler,
		middleware.NewTokenBucket(rlCfg, rdb),
		middleware.NewRedisCache(cacheCfg, rdb),
	)
	router.RegisterOwner(e, ownerHandler, cfg.JWTSecret)
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)

	// Booking confirmations are consumed off the request path; the
	// consumer reconnects on broker failures.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
