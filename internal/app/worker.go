package app

import (
	"context"
	"time"

	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/messaging/kafka/producer"
	"go-absensi/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker menjalankan outbox relay: poll outbox_events, publish ke
// Kafka, tandai sent/failed. Berjalan sebagai proses terpisah dari API.
func RunWorker(ctx context.Context, cfg Config) error {
	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, zap.L(), 3*time.Second)
	return nil
}
