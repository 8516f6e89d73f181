package app

import (
	"context"

	"go-absensi/internal/bootstrap"
	"go-absensi/internal/events"
	"go-absensi/internal/messaging/kafka/consumer"
	"go-absensi/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer membaca topik keputusan cuti: audit trail + invalidasi
// cache rekap absensi.
func RunConsumer(ctx context.Context, cfg Config) error {
	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   events.LeaveDecidedTopic,
		GroupID: "absensi-leave-decision",
	})
	defer reader.Close()

	consumer.ConsumeLeaveDecisions(ctx, reader, rdb, bootstrap.NewStdoutAuditLogger(), zap.L())
	return nil
}
