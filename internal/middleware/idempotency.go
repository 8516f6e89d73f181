package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency menahan POST ganda yang membawa Idempotency-Key yang sama
// dari user yang sama selama request pertama masih berjalan. Dipasang di
// check-in, check-out, dan pengajuan cuti.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		lockKey := fmt.Sprintf("idemp:%s:%s:%s:lock", c.FullPath(), userID, idempKey)

		// Atomic lock (SetNX). Expiry pendek agar lock hilang sendiri
		// kalau proses mati di tengah jalan.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Permintaan Anda sedang diproses, mohon tunggu sebentar.",
			})
			return
		}

		c.Next()

		_ = rdb.Del(c.Request.Context(), lockKey).Err()
	}
}
