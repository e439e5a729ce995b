package di

import (
	"time"

	"github.com/julija05/kidseducation-guard/internal/infrastructure/metrics"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/worker"
)

// NewWorkers はバックグラウンドジョブを登録したマネージャーを作成します
func NewWorkers(c *Container) *worker.Manager {
	m := worker.NewManager()

	var checks []worker.HealthCheck
	if c.PgClient != nil {
		checks = append(checks, worker.HealthCheck{Name: "postgres", Check: c.PgClient.Health})
	}
	if c.RedisClient != nil {
		checks = append(checks, worker.HealthCheck{Name: "redis", Check: c.RedisClient.Health})
	}
	if len(checks) > 0 {
		m.Register(worker.NewStoreHealthJob(checks, func(name string, err error) {
			if err != nil {
				metrics.TrackStoreError(name)
			}
		}))
	}

	if len(c.pruners) > 0 {
		m.Register(worker.NewMemstoreSweepJob(time.Now, c.pruners...))
	}

	return m
}
