package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/renderstim/stimgen/internal/latents"
)

type DatasetService interface {
	CreateDataset(ctx context.Context, params *latents.DatasetParameters) (*Dataset, []*Scene, error)
	GetDataset(ctx context.Context, id string) (*Dataset, error)
	ListDatasets(ctx context.Context) ([]*Dataset, error)
	DeleteDataset(ctx context.Context, id string) error
	GetScenes(ctx context.Context, datasetID string) ([]*Scene, error)
	GetScene(ctx context.Context, datasetID string, index int) (*Scene, error)
	CountScenes(ctx context.Context) (int, error)
	StartRender(ctx context.Context, datasetID string) (*Job, error)
}

type Service struct {
	repo    Repository
	sampler *latents.Sampler
	logger  *slog.Logger
}

func NewService(repo Repository, sampler *latents.Sampler, logger *slog.Logger) *Service {
	return &Service{repo: repo, sampler: sampler, logger: logger}
}

// CreateDataset samples one SceneConfig per scene and persists the batch.
// Sampling is all-or-nothing: a validation or sampling error leaves no rows
// behind, and a persistence error rolls the dataset back.
func (s *Service) CreateDataset(ctx context.Context, params *latents.DatasetParameters) (*Dataset, []*Scene, error) {
	configs, err := s.sampler.SampleDataset(params)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	d := &Dataset{
		ID:        NewID(),
		Comment:   params.Comment,
		NumScenes: len(configs),
		Params:    params,
		CreatedAt: now,
	}
	if err := s.repo.CreateDataset(ctx, d); err != nil {
		return nil, nil, err
	}

	scenes := make([]*Scene, 0, len(configs))
	for i, cfg := range configs {
		scene := &Scene{
			ID:        NewID(),
			DatasetID: d.ID,
			Index:     i,
			Seed:      cfg.Seed,
			Config:    cfg,
			CreatedAt: now,
		}
		if err := s.repo.CreateScene(ctx, scene); err != nil {
			// Cascade removes any scenes already inserted.
			s.repo.DeleteDataset(ctx, d.ID)
			return nil, nil, err
		}
		scenes = append(scenes, scene)
	}

	if s.logger != nil {
		s.logger.Info("dataset created", "dataset_id", d.ID, "scenes", len(scenes))
	}
	return d, scenes, nil
}

func (s *Service) GetDataset(ctx context.Context, id string) (*Dataset, error) {
	return s.repo.GetDataset(ctx, id)
}

func (s *Service) ListDatasets(ctx context.Context) ([]*Dataset, error) {
	return s.repo.ListDatasets(ctx)
}

func (s *Service) DeleteDataset(ctx context.Context, id string) error {
	return s.repo.DeleteDataset(ctx, id)
}

func (s *Service) GetScenes(ctx context.Context, datasetID string) ([]*Scene, error) {
	return s.repo.ListScenes(ctx, datasetID)
}

func (s *Service) GetScene(ctx context.Context, datasetID string, index int) (*Scene, error) {
	return s.repo.GetScene(ctx, datasetID, index)
}

func (s *Service) CountScenes(ctx context.Context) (int, error) {
	return s.repo.CountScenes(ctx)
}

// StartRender queues a render job for a dataset. The runner picks it up and
// submits each scene to the render collaborator in index order.
func (s *Service) StartRender(ctx context.Context, datasetID string) (*Job, error) {
	d, err := s.repo.GetDataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("dataset not found")
	}

	now := time.Now()
	job := &Job{
		ID:        NewID(),
		Type:      JobTypeRender,
		Status:    JobStatusPending,
		DatasetID: datasetID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("render job queued", "job_id", job.ID, "dataset_id", datasetID)
	}
	return job, nil
}
