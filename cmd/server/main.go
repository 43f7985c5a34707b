package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/olzhasbek/qazcargo/internal/auth"
	"github.com/olzhasbek/qazcargo/internal/config"
	"github.com/olzhasbek/qazcargo/internal/database"
	"github.com/olzhasbek/qazcargo/internal/handler"
	"github.com/olzhasbek/qazcargo/internal/middleware"
	"github.com/olzhasbek/qazcargo/internal/pricing"
	"github.com/olzhasbek/qazcargo/internal/queue"
	"github.com/olzhasbek/qazcargo/internal/repository"
	"github.com/olzhasbek/qazcargo/internal/router"
	queue_publisher "github.com/olzhasbek/qazcargo/internal/service"
)

// main is the composition root: it wires repositories, the pricing engine
// and the auth service behind the HTTP layer and starts the server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	rates := repository.NewRateRepo(db)

	authSvc := auth.NewService(users, sessions, cfg.BcryptCost, cfg.SessionTTL())
	engine := pricing.NewEngine(cfg.WeightThresholdKg)

	authHandler := handler.NewAuthHandler(cfg, authSvc)
	shippingHandler := handler.NewShippingHandler(rates, engine)
	shippingHandler.Publish = queue_publisher.PublishQuoteCalculated

	// Redis backs the response cache and the auth rate limiter; when it is
	// unreachable both middlewares degrade to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	sessionMW := middleware.SessionAuth(authSvc)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterShipping(e, shippingHandler, cacheMW)
	router.RegisterAuth(e, authHandler, shippingHandler, sessionMW, limitMW)

	// Consumer writes quote analytics to logs/quotes.log; it reconnects on
	// broker failure and never takes the server down.
	go func() {
		if err := queue.StartQuoteConsumer(); err != nil {
			log.Printf("quote consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
