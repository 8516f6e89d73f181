package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SummaryCachePrefix adalah prefix semua key cache rekap absensi.
	SummaryCachePrefix = "absensi:summary:"

	summaryCacheTTL = 5 * time.Minute
)

func summaryCacheKey(f SummaryFilter) string {
	return fmt.Sprintf("%s%s:%s:%s:%s",
		SummaryCachePrefix, f.StartDate, f.EndDate, f.EmployeeID, f.Status)
}

// InvalidateSummaryCache membuang semua entri rekap. Dipanggil consumer
// setelah keputusan cuti mengubah isi ledger.
func InvalidateSummaryCache(ctx context.Context, rdb *redis.Client) error {
	iter := rdb.Scan(ctx, 0, SummaryCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
