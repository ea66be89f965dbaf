package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/campus-connect/adapters/event"
	"github.com/khoahotran/campus-connect/adapters/media_storage"
	"github.com/khoahotran/campus-connect/adapters/persistence"
	"github.com/khoahotran/campus-connect/internal/application/service"
	dmUC "github.com/khoahotran/campus-connect/internal/application/usecase/directmessage"
	"github.com/khoahotran/campus-connect/internal/config"
	"github.com/khoahotran/campus-connect/pkg/logger"
	"github.com/khoahotran/campus-connect/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Campus Connect worker...")

	shutdownTracing, err := tracing.Init(cfg, appLogger, "campus-connect-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize uploader", err)
	}

	// Worker Use Case
	directRepo := persistence.NewPostgresDirectMessageRepo(dbPool, appLogger)
	processAttachmentUC := dmUC.NewProcessAttachmentUseCase(directRepo, uploader, appLogger)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicMessageEvents,
		GroupID:  "attachment-processor-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicMessageEvents))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		l := appLogger.With(zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)))

		var payload service.MessageEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			l.Error("Failed to unmarshal event, skipping", err)
			commitMessage(ctx, consumer, msg, l)
			continue
		}

		if err := processAttachmentUC.Execute(ctx, payload); err != nil {
			l.Error("Failed to process message event", err, zap.String("message_id", payload.MessageID.String()))
			continue
		}

		commitMessage(ctx, consumer, msg, l)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
