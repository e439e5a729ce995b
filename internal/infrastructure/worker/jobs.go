package worker

import (
	"context"
	"log/slog"
	"time"
)

// HealthCheck は名前付きの依存先チェックです
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewStoreHealthJob はガード用ストアの疎通を定期確認するジョブを作成します
// onResult は各チェックの結果を受け取ります（メトリクス記録用）
func NewStoreHealthJob(checks []HealthCheck, onResult func(name string, err error)) Job {
	return Job{
		Name:     "store_health_check",
		Interval: 30 * time.Second,
		Timeout:  5 * time.Second,
		Fn: func(ctx context.Context) error {
			var firstErr error
			for _, c := range checks {
				err := c.Check(ctx)
				if onResult != nil {
					onResult(c.Name, err)
				}
				if err != nil {
					slog.Warn("store health check failed", "store", c.Name, "error", err)
					if firstErr == nil {
						firstErr = err
					}
				}
			}
			return firstErr
		},
	}
}

// Pruner は期限切れエントリを掃除できるストアです
type Pruner interface {
	PruneExpired(now time.Time) int
}

// NewMemstoreSweepJob はプロセス内ストアの期限切れエントリを掃除するジョブを作成します
func NewMemstoreSweepJob(now func() time.Time, pruners ...Pruner) Job {
	return Job{
		Name:     "memstore_sweep",
		Interval: time.Minute,
		Fn: func(ctx context.Context) error {
			removed := 0
			t := now()
			for _, p := range pruners {
				removed += p.PruneExpired(t)
			}
			if removed > 0 {
				slog.Debug("memstore sweep completed", "removed", removed)
			}
			return nil
		},
	}
}
