package consumer

import (
	"context"
	"encoding/json"

	"go-absensi/internal/attendance"
	"go-absensi/internal/bootstrap"
	"go-absensi/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecisions membaca event keputusan cuti, mencatat audit trail,
// dan membuang cache rekap absensi admin karena approval mengubah isi ledger.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decision")
	log.Info("leave decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decision consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  "LEAVE_DECIDED",
			Message: "leave request decided",
			Meta: map[string]any{
				"leave_id":    event.LeaveID,
				"employee_id": event.EmployeeID,
				"leave_type":  event.LeaveType,
				"status":      event.Status,
				"decided_by":  event.DecidedBy,
			},
		})

		if err := attendance.InvalidateSummaryCache(ctx, rdb); err != nil {
			log.Error("invalidate summary cache failed", zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decision message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision processed",
			zap.String("leave_id", event.LeaveID),
			zap.String("status", event.Status),
		)
	}
}
