package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/EsmaNErdem/jobly/internal/config"
	"github.com/EsmaNErdem/jobly/internal/database"
	"github.com/EsmaNErdem/jobly/internal/handler"
	"github.com/EsmaNErdem/jobly/internal/middleware"
	"github.com/EsmaNErdem/jobly/internal/queue"
	"github.com/EsmaNErdem/jobly/internal/repository"
	"github.com/EsmaNErdem/jobly/internal/router"
	"github.com/EsmaNErdem/jobly/internal/validation"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional infrastructure: a nil client disables both the rate
	// limiter and the response cache without affecting request handling.
	rdb := config.NewRedisClient()

	techRepo := repository.NewTechnologyRepo(db)
	companyRepo := repository.NewCompanyRepo(db)
	jobRepo := repository.NewJobRepo(db, techRepo)
	userRepo := repository.NewUserRepo(db, techRepo, cfg.BcryptCost)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(middleware.AuthenticateJWT(cfg.JWTSecret))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo))
	router.RegisterCompanies(e, handler.NewCompanyHandler(companyRepo), cache)
	router.RegisterJobs(e, handler.NewJobHandler(jobRepo), cache)
	router.RegisterUsers(e, handler.NewUserHandler(cfg, userRepo))

	// Background consumer: logs submitted applications from the broker. It
	// reconnects on its own and never takes the server down.
	go func() {
		if err := queue.StartApplicationConsumer(); err != nil {
			log.Printf("application consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
