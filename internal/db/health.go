package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartHealthCheck pings db every interval until ctx is done. It logs once
// when the database becomes unreachable and once when it recovers.
func StartHealthCheck(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		healthy := true
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pingCtx, cancel := context.WithTimeout(ctx, interval)
				err := db.PingContext(pingCtx)
				cancel()
				switch {
				case err != nil && healthy:
					healthy = false
					log.Error("database unreachable", zap.Error(err))
				case err == nil && !healthy:
					healthy = true
					log.Info("database reachable again")
				}
			}
		}
	}()
}
