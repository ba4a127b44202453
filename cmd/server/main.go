package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/train-booking/internal/config"
	"github.com/iliyamo/train-booking/internal/database"
	"github.com/iliyamo/train-booking/internal/handler"
	"github.com/iliyamo/train-booking/internal/livestatus"
	"github.com/iliyamo/train-booking/internal/middleware"
	"github.com/iliyamo/train-booking/internal/queue"
	"github.com/iliyamo/train-booking/internal/repository"
	"github.com/iliyamo/train-booking/internal/router"
	"github.com/iliyamo/train-booking/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("could not read .env")
	}
	cfg := config.Load()
	setupLogging(cfg.Env)

	db, err := database.Open(database.Options{
		Driver: cfg.DB.Driver,
		User:   cfg.DB.User,
		Pass:   cfg.DB.Pass,
		Host:   cfg.DB.Host,
		Port:   cfg.DB.Port,
		Name:   cfg.DB.Name,
		Path:   cfg.DB.Path,
	})
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db, cfg.DB.Driver); err != nil {
			logrus.Fatalf("migrate: %v", err)
		}
	}

	rdb := config.NewRedisClient()
	var tokens *repository.TokenRepo
	if rdb != nil {
		defer rdb.Close()
		tokens = repository.NewTokenRepo(rdb)
	}

	users := repository.NewUserRepo(db)
	trainRepo := repository.NewTrainRepo(db)
	seats := repository.NewSeatRepo(db, repository.DecrementStrategy(cfg.Seat.Strategy), cfg.Seat.MaxRetries)
	trains := service.NewTrainService(repository.NewStationRepo(db), trainRepo, repository.NewScheduleRepo(db), seats)
	bookings := service.NewBookingService(trainRepo, seats, repository.NewTicketRepo(db), queue.NewPublisher(cfg.RabbitURL))
	live := livestatus.New(livestatus.Config{
		BaseURL: cfg.Live.BaseURL,
		APIKey:  cfg.Live.APIKey,
		Host:    cfg.Live.Host,
		Timeout: cfg.Live.Timeout,
	})

	go func() {
		if err := queue.NewConsumer(cfg.RabbitURL, cfg.LogDir).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logrus.WithError(err).Error("booking consumer stopped")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users, tokens),
		Trains:  handler.NewTrainHandler(trains),
		Live:    handler.NewLiveStatusHandler(live),
		Tickets: handler.NewTicketHandler(bookings, users),
	}, router.Middleware{
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":          addr,
			"env":           cfg.Env,
			"db_driver":     cfg.DB.Driver,
			"seat_strategy": seats.Strategy(),
			"redis":         rdb != nil,
		}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown")
	}
}

// setupLogging uses the text formatter in dev and JSON everywhere else.
func setupLogging(env string) {
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	if env == "dev" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})
}
