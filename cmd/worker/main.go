package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/fitstudio/config"
	"github.com/Domenick1991/fitstudio/internal/audit"
	"github.com/Domenick1991/fitstudio/internal/kafka"
	"github.com/Domenick1991/fitstudio/internal/logger"
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
	if len(cfg.Kafka.Brokers) == 0 {
		logrus.Fatal("kafka brokers are not configured, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	recorder := audit.NewRecorder(nil)

	logrus.WithFields(logrus.Fields{
		"topic":    cfg.Kafka.BookingEventsTopic,
		"group_id": cfg.Kafka.GroupID,
	}).Info("audit worker started")

	if err := consumer.Consume(ctx, kafka.BookingEventHandler(recorder.Record)); err != nil {
		logrus.Errorf("consumer stopped: %v", err)
		return
	}
	logrus.Info("audit worker stopped")
}
