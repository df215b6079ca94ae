package workers

import (
	"context"
	"time"

	"abrigo/backend/internal/logging"
)

// ProjectWarmer is satisfied by services.ProjectDirectory.
type ProjectWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// ProjectCacheWarmer refills the project cache ahead of grants, which resolve
// their project on every call.
type ProjectCacheWarmer struct {
	projects ProjectWarmer
	interval time.Duration
}

func NewProjectCacheWarmer(projects ProjectWarmer, interval time.Duration) *ProjectCacheWarmer {
	return &ProjectCacheWarmer{projects: projects, interval: interval}
}

// Start refills once and then on every tick until ctx ends.
func (w *ProjectCacheWarmer) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refill(ctx)

	for {
		select {
		case <-ticker.C:
			w.refill(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (w *ProjectCacheWarmer) refill(ctx context.Context) {
	n, err := w.projects.Warm(ctx)
	if err != nil {
		logging.Warn("Project cache refill failed", "error", err.Error())
		return
	}
	logging.Debug("Project cache refilled", "projects", n)
}
