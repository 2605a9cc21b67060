package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/renderstim/stimgen/internal/render"
)

// Runner polls for pending jobs and executes them one at a time. Render
// jobs walk a dataset's scenes in index order and submit each to the render
// collaborator, storing the augmentation back on the scene row.
type Runner struct {
	repo         Repository
	renderer     render.Client
	logger       *slog.Logger
	pollInterval time.Duration
	running      atomic.Bool
	paused       atomic.Bool
}

func NewRunner(repo Repository, renderer render.Client, logger *slog.Logger) *Runner {
	return &Runner{
		repo:         repo,
		renderer:     renderer,
		logger:       logger,
		pollInterval: 5 * time.Second,
	}
}

func (r *Runner) Start(ctx context.Context) {
	if r.running.Swap(true) {
		return
	}

	r.logger.Info("job runner started")

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("job runner stopping")
			r.running.Store(false)
			return
		case <-ticker.C:
			if !r.paused.Load() {
				r.processNextJob(ctx)
			}
		}
	}
}

func (r *Runner) Pause() {
	r.paused.Store(true)
	r.logger.Info("job runner paused")
}

func (r *Runner) Resume() {
	r.paused.Store(false)
	r.logger.Info("job runner resumed")
}

func (r *Runner) IsPaused() bool {
	return r.paused.Load()
}

func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

func (r *Runner) processNextJob(ctx context.Context) {
	jobs, err := r.repo.ListPendingJobs(ctx)
	if err != nil {
		r.logger.Error("failed to list pending jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	job := jobs[0]
	r.logger.Info("processing job", "job_id", job.ID, "type", job.Type)

	switch job.Type {
	case JobTypeRender:
		r.processRenderJob(ctx, job)
	default:
		r.logger.Warn("unknown job type", "type", job.Type)
		r.repo.UpdateJobStatus(ctx, job.ID, JobStatusFailed, "unknown job type")
	}
}

func (r *Runner) processRenderJob(ctx context.Context, job *Job) {
	if r.renderer == nil {
		r.repo.UpdateJobStatus(ctx, job.ID, JobStatusFailed, "render client not configured")
		return
	}

	scenes, err := r.repo.ListScenes(ctx, job.DatasetID)
	if err != nil {
		r.repo.UpdateJobStatus(ctx, job.ID, JobStatusFailed, fmt.Sprintf("list scenes: %v", err))
		return
	}
	if len(scenes) == 0 {
		r.repo.UpdateJobStatus(ctx, job.ID, JobStatusFailed, "dataset has no scenes")
		return
	}

	r.repo.UpdateJobStatus(ctx, job.ID, JobStatusRunning, "")

	for i, scene := range scenes {
		if ctx.Err() != nil {
			r.repo.UpdateJobStatus(ctx, job.ID, JobStatusFailed, "interrupted")
			return
		}
		if scene.Rendered {
			continue
		}

		result, err := r.renderer.RenderScene(ctx, scene.Config)
		if err != nil {
			r.logger.Error("scene render failed", "job_id", job.ID, "scene_index", scene.Index, "error", err)
			r.repo.UpdateJobStatus(ctx, job.ID, JobStatusFailed, err.Error())
			return
		}
		if err := r.repo.MarkSceneRendered(ctx, scene.ID, result); err != nil {
			r.repo.UpdateJobStatus(ctx, job.ID, JobStatusFailed, fmt.Sprintf("store render result: %v", err))
			return
		}

		r.repo.UpdateJobProgress(ctx, job.ID, (i+1)*100/len(scenes))
	}

	r.repo.UpdateJobStatus(ctx, job.ID, JobStatusCompleted, "")
	r.logger.Info("render job completed", "job_id", job.ID, "scenes", len(scenes))
}
