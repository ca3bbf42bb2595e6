package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/sergiorey/hotel-reservation/internal/config"
	"github.com/sergiorey/hotel-reservation/internal/database"
	"github.com/sergiorey/hotel-reservation/internal/handler"
	"github.com/sergiorey/hotel-reservation/internal/middleware"
	"github.com/sergiorey/hotel-reservation/internal/queue"
	"github.com/sergiorey/hotel-reservation/internal/repository"
	"github.com/sergiorey/hotel-reservation/internal/router"
	"github.com/sergiorey/hotel-reservation/internal/service"
)

func main() {
	// Load .env if present; real environments set the variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	// Repositories share the injected pool; no ambient globals.
	roomRepo := repository.NewRoomRepo(db)
	clientRepo := repository.NewClientRepo(db)
	reservationRepo := repository.NewReservationRepo(db, roomRepo)
	staffRepo := repository.NewStaffRepo(db)

	roomSvc := service.NewRoomService(roomRepo, reservationRepo, cfg.OpTimeout)
	clientSvc := service.NewClientService(clientRepo, reservationRepo, cfg.OpTimeout)
	reservationSvc := service.NewReservationService(roomRepo, clientRepo, reservationRepo, cfg.OpTimeout)

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	e := echo.New()
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, staffRepo))
	router.RegisterRooms(e, handler.NewRoomHandler(roomSvc), cfg.JWTSecret)
	router.RegisterClients(e, handler.NewClientHandler(clientSvc), cfg.JWTSecret)
	router.RegisterReservations(e, handler.NewReservationHandler(reservationSvc), cfg.JWTSecret)

	// Background consumer keeps its own connection and reconnect loop.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
