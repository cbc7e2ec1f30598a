package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/fitstudio/config"
	"github.com/Domenick1991/fitstudio/internal/bootstrap"
	"github.com/Domenick1991/fitstudio/internal/cache"
	"github.com/Domenick1991/fitstudio/internal/kafka"
	"github.com/Domenick1991/fitstudio/internal/logger"
	"github.com/Domenick1991/fitstudio/internal/repository"
	"github.com/Domenick1991/fitstudio/internal/service/booking"
	"github.com/Domenick1991/fitstudio/internal/service/classes"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		logrus.Fatalf("setup logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logrus.Fatalf("open store: %v", err)
	}
	defer closeStore()

	var (
		classOpts   []classes.ClassServiceOption
		bookingOpts []booking.BookingServiceOption
	)

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Redis.ClassesTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("redis is unreachable, classes will be read from the store until it recovers")
		}
		classOpts = append(classOpts, classes.WithCache(redisCache))
		bookingOpts = append(bookingOpts, booking.WithCache(redisCache))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logrus.WithError(err).Warn("kafka is unreachable, booking events may be lost")
		}
		bookingOpts = append(bookingOpts, booking.WithPublisher(producer, cfg.Kafka.BookingEventsTopic))
	}

	classService := classes.NewClassService(store, classOpts...)
	bookingService := booking.NewBookingService(store, bookingOpts...)

	if err := bootstrap.Run(ctx, cfg, classService, bookingService); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}

// openStore returns the configured store and a function releasing it. Sample
// classes are seeded into an empty store when enabled.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := repository.NewMemoryStore()
		if _, err := repository.SeedSampleClasses(ctx, store, time.Now()); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	if cfg.Database.Migrate {
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	store := repository.NewPGStore(pool)
	if cfg.Database.Seed {
		if _, err := repository.SeedSampleClasses(ctx, store, time.Now()); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return store, pool.Close, nil
}
