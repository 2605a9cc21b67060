package dataset

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/renderstim/stimgen/internal/db"
	"github.com/renderstim/stimgen/internal/latents"
	"github.com/renderstim/stimgen/internal/render"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) (*db.DB, *SQLiteRepository) {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "stimgen.db"), nil)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database, NewRepository(database.Conn())
}

func testDataset() *Dataset {
	return &Dataset{
		ID:        NewID(),
		Comment:   "unit test batch",
		NumScenes: 2,
		Params:    latents.DefaultParameters(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestRepository_DatasetRoundtrip(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	d := testDataset()
	if err := repo.CreateDataset(ctx, d); err != nil {
		t.Fatalf("CreateDataset() error = %v", err)
	}

	got, err := repo.GetDataset(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetDataset() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetDataset() = nil, want the created dataset")
	}
	if got.Comment != d.Comment || got.NumScenes != d.NumScenes {
		t.Errorf("got %+v, want comment %q and %d scenes", got, d.Comment, d.NumScenes)
	}
	if got.Params == nil || got.Params.NumScenes != d.Params.NumScenes {
		t.Errorf("params did not survive the roundtrip: %+v", got.Params)
	}
}

func TestRepository_GetDatasetMissing(t *testing.T) {
	_, repo := setupTestDB(t)

	got, err := repo.GetDataset(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("GetDataset() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetDataset() = %+v, want nil", got)
	}
}

func TestRepository_DeleteDatasetCascades(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	d := testDataset()
	if err := repo.CreateDataset(ctx, d); err != nil {
		t.Fatalf("CreateDataset() error = %v", err)
	}

	scene := &Scene{
		ID:        NewID(),
		DatasetID: d.ID,
		Index:     0,
		Seed:      42,
		Config:    &latents.SceneConfig{Seed: 42, NumObjects: 1},
		CreatedAt: time.Now(),
	}
	if err := repo.CreateScene(ctx, scene); err != nil {
		t.Fatalf("CreateScene() error = %v", err)
	}

	if err := repo.DeleteDataset(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDataset() error = %v", err)
	}

	count, err := repo.CountScenes(ctx)
	if err != nil {
		t.Fatalf("CountScenes() error = %v", err)
	}
	if count != 0 {
		t.Errorf("scenes remaining after cascade delete = %d, want 0", count)
	}
}

func TestRepository_SceneRoundtrip(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	d := testDataset()
	if err := repo.CreateDataset(ctx, d); err != nil {
		t.Fatalf("CreateDataset() error = %v", err)
	}

	hdri := "studio_small_03"
	cfg := &latents.SceneConfig{
		Seed:        777,
		Resolution:  [2]int{256, 144},
		HDRIWorld:   true,
		HDRIID:      &hdri,
		Lighting:    latents.LightingAmbientHDRI,
		NumObjects:  2,
		AssetSource: latents.SourceBasicShapes,
		ObjectShapes: []string{
			"cube", "sphere",
		},
	}
	scene := &Scene{
		ID:        NewID(),
		DatasetID: d.ID,
		Index:     3,
		Seed:      cfg.Seed,
		Config:    cfg,
		CreatedAt: time.Now(),
	}
	if err := repo.CreateScene(ctx, scene); err != nil {
		t.Fatalf("CreateScene() error = %v", err)
	}

	got, err := repo.GetScene(ctx, d.ID, 3)
	if err != nil {
		t.Fatalf("GetScene() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetScene() = nil, want the created scene")
	}
	if got.Seed != 777 || got.Rendered {
		t.Errorf("scene = %+v, want seed 777 and not rendered", got)
	}
	if got.Config == nil || got.Config.HDRIID == nil || *got.Config.HDRIID != hdri {
		t.Errorf("config did not survive the roundtrip: %+v", got.Config)
	}
	if got.Result != nil {
		t.Errorf("Result = %+v, want nil before rendering", got.Result)
	}
}

func TestRepository_MarkSceneRendered(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	d := testDataset()
	if err := repo.CreateDataset(ctx, d); err != nil {
		t.Fatalf("CreateDataset() error = %v", err)
	}
	scene := &Scene{
		ID:        NewID(),
		DatasetID: d.ID,
		Index:     0,
		Seed:      1,
		Config:    &latents.SceneConfig{Seed: 1, NumObjects: 1},
		CreatedAt: time.Now(),
	}
	if err := repo.CreateScene(ctx, scene); err != nil {
		t.Fatalf("CreateScene() error = %v", err)
	}

	result := &render.Result{
		Channels:        render.DefaultChannels,
		ObjectPositions: []latents.Vec3{{0.5, -1.2, 0.3}},
		DepthScaling:    render.DepthScaling{MinDepth: 1.5, MaxDepth: 12.0},
	}
	if err := repo.MarkSceneRendered(ctx, scene.ID, result); err != nil {
		t.Fatalf("MarkSceneRendered() error = %v", err)
	}

	got, err := repo.GetScene(ctx, d.ID, 0)
	if err != nil {
		t.Fatalf("GetScene() error = %v", err)
	}
	if !got.Rendered {
		t.Error("Rendered = false, want true")
	}
	if got.Result == nil || len(got.Result.ObjectPositions) != 1 {
		t.Fatalf("Result = %+v, want one object position", got.Result)
	}
	if got.Result.DepthScaling.MaxDepth != 12.0 {
		t.Errorf("MaxDepth = %v, want 12.0", got.Result.DepthScaling.MaxDepth)
	}
}

func TestRepository_ListScenesOrdered(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	d := testDataset()
	if err := repo.CreateDataset(ctx, d); err != nil {
		t.Fatalf("CreateDataset() error = %v", err)
	}

	// Insert out of index order.
	for _, idx := range []int{2, 0, 1} {
		scene := &Scene{
			ID:        NewID(),
			DatasetID: d.ID,
			Index:     idx,
			Seed:      int64(idx),
			Config:    &latents.SceneConfig{Seed: int64(idx)},
			CreatedAt: time.Now(),
		}
		if err := repo.CreateScene(ctx, scene); err != nil {
			t.Fatalf("CreateScene() error = %v", err)
		}
	}

	scenes, err := repo.ListScenes(ctx, d.ID)
	if err != nil {
		t.Fatalf("ListScenes() error = %v", err)
	}
	if len(scenes) != 3 {
		t.Fatalf("got %d scenes, want 3", len(scenes))
	}
	for i, s := range scenes {
		if s.Index != i {
			t.Errorf("scenes[%d].Index = %d, want %d", i, s.Index, i)
		}
	}
}

func TestRepository_JobLifecycle(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	job := &Job{
		ID:        NewID(),
		Type:      JobTypeRender,
		Status:    JobStatusPending,
		DatasetID: "ds1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob() error = %v", err)
	}

	pending, err := repo.ListPendingJobs(ctx)
	if err != nil {
		t.Fatalf("ListPendingJobs() error = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != job.ID {
		t.Fatalf("pending = %+v, want the created job", pending)
	}

	if err := repo.UpdateJobStatus(ctx, job.ID, JobStatusRunning, ""); err != nil {
		t.Fatalf("UpdateJobStatus() error = %v", err)
	}
	if err := repo.UpdateJobProgress(ctx, job.ID, 60); err != nil {
		t.Fatalf("UpdateJobProgress() error = %v", err)
	}

	got, err := repo.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if got.Status != JobStatusRunning || got.Progress != 60 {
		t.Errorf("job = %+v, want running at 60%%", got)
	}

	if err := repo.UpdateJobStatus(ctx, job.ID, JobStatusFailed, "renderer unreachable"); err != nil {
		t.Fatalf("UpdateJobStatus() error = %v", err)
	}
	got, _ = repo.GetJob(ctx, job.ID)
	if got.Status != JobStatusFailed || got.Error != "renderer unreachable" {
		t.Errorf("job = %+v, want failed with error message", got)
	}

	pending, _ = repo.ListPendingJobs(ctx)
	if len(pending) != 0 {
		t.Errorf("pending jobs = %d, want 0 after terminal status", len(pending))
	}
}

func TestRepository_ConfigUpsert(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	if err := repo.SetConfig(ctx, "auth_token", "abc"); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	if v, err := repo.GetConfig(ctx, "auth_token"); err != nil || v != "abc" {
		t.Fatalf("GetConfig() = %q, %v; want abc", v, err)
	}

	if err := repo.SetConfig(ctx, "auth_token", "def"); err != nil {
		t.Fatalf("SetConfig() overwrite error = %v", err)
	}
	if v, _ := repo.GetConfig(ctx, "auth_token"); v != "def" {
		t.Errorf("GetConfig() after overwrite = %q, want def", v)
	}

	if v, err := repo.GetConfig(ctx, "missing"); err != nil || v != "" {
		t.Errorf("GetConfig(missing) = %q, %v; want empty string and nil error", v, err)
	}
}
