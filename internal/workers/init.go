package workers

import (
	"context"
	"time"
)

type WorkersContainer struct {
	CacheWarmer *ProjectCacheWarmer
}

// InitWorkers starts the background workers. The warmer refills slightly
// before entries expire.
func InitWorkers(ctx context.Context, projects ProjectWarmer, cacheTTL time.Duration) *WorkersContainer {
	interval := cacheTTL * 9 / 10
	if interval <= 0 {
		interval = time.Minute
	}

	warmer := NewProjectCacheWarmer(projects, interval)

	// Start workers
	go warmer.Start(ctx)

	return &WorkersContainer{
		CacheWarmer: warmer,
	}
}
