package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/renderstim/stimgen/internal/latents"
	"github.com/renderstim/stimgen/internal/render"
)

type Repository interface {
	CreateDataset(ctx context.Context, d *Dataset) error
	GetDataset(ctx context.Context, id string) (*Dataset, error)
	ListDatasets(ctx context.Context) ([]*Dataset, error)
	DeleteDataset(ctx context.Context, id string) error
	CountDatasets(ctx context.Context) (int, error)

	CreateScene(ctx context.Context, s *Scene) error
	GetScene(ctx context.Context, datasetID string, index int) (*Scene, error)
	ListScenes(ctx context.Context, datasetID string) ([]*Scene, error)
	CountScenes(ctx context.Context) (int, error)
	MarkSceneRendered(ctx context.Context, id string, result *render.Result) error

	CreateJob(ctx context.Context, job *Job) error
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, limit int) ([]*Job, error)
	ListPendingJobs(ctx context.Context) ([]*Job, error)
	UpdateJobStatus(ctx context.Context, id, status, errorMsg string) error
	UpdateJobProgress(ctx context.Context, id string, progress int) error

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateDataset(ctx context.Context, d *Dataset) error {
	params, err := json.Marshal(d.Params)
	if err != nil {
		return fmt.Errorf("marshal dataset params: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO datasets (id, comment, num_scenes, params, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, d.ID, nullString(d.Comment), d.NumScenes, string(params), d.CreatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetDataset(ctx context.Context, id string) (*Dataset, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, comment, num_scenes, params, created_at
		FROM datasets WHERE id = ?
	`, id)
	return r.scanDataset(row)
}

func (r *SQLiteRepository) scanDataset(row *sql.Row) (*Dataset, error) {
	var d Dataset
	var comment sql.NullString
	var params string
	var createdAt string

	err := row.Scan(&d.ID, &comment, &d.NumScenes, &params, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d.Comment = comment.String
	if err := json.Unmarshal([]byte(params), &d.Params); err != nil {
		return nil, fmt.Errorf("unmarshal dataset params: %w", err)
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &d, nil
}

func (r *SQLiteRepository) ListDatasets(ctx context.Context) ([]*Dataset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, comment, num_scenes, params, created_at
		FROM datasets ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []*Dataset
	for rows.Next() {
		var d Dataset
		var comment sql.NullString
		var params string
		var createdAt string

		if err := rows.Scan(&d.ID, &comment, &d.NumScenes, &params, &createdAt); err != nil {
			return nil, err
		}
		d.Comment = comment.String
		if err := json.Unmarshal([]byte(params), &d.Params); err != nil {
			return nil, fmt.Errorf("unmarshal dataset params: %w", err)
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		datasets = append(datasets, &d)
	}
	return datasets, rows.Err()
}

func (r *SQLiteRepository) DeleteDataset(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM datasets WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) CountDatasets(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM datasets").Scan(&count)
	return count, err
}

func (r *SQLiteRepository) CreateScene(ctx context.Context, s *Scene) error {
	config, err := json.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("marshal scene config: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO scenes (id, dataset_id, idx, seed, config, rendered, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.DatasetID, s.Index, s.Seed, string(config), boolToInt(s.Rendered), s.CreatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetScene(ctx context.Context, datasetID string, index int) (*Scene, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, dataset_id, idx, seed, config, rendered, render_result, created_at
		FROM scenes WHERE dataset_id = ? AND idx = ?
	`, datasetID, index)

	var s Scene
	var config string
	var rendered int
	var result sql.NullString
	var createdAt string

	err := row.Scan(&s.ID, &s.DatasetID, &s.Index, &s.Seed, &config, &rendered, &result, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.fillScene(&s, config, rendered, result, createdAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) ListScenes(ctx context.Context, datasetID string) ([]*Scene, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dataset_id, idx, seed, config, rendered, render_result, created_at
		FROM scenes WHERE dataset_id = ? ORDER BY idx ASC
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenes []*Scene
	for rows.Next() {
		var s Scene
		var config string
		var rendered int
		var result sql.NullString
		var createdAt string

		if err := rows.Scan(&s.ID, &s.DatasetID, &s.Index, &s.Seed, &config, &rendered, &result, &createdAt); err != nil {
			return nil, err
		}
		if err := r.fillScene(&s, config, rendered, result, createdAt); err != nil {
			return nil, err
		}
		scenes = append(scenes, &s)
	}
	return scenes, rows.Err()
}

func (r *SQLiteRepository) fillScene(s *Scene, config string, rendered int, result sql.NullString, createdAt string) error {
	var cfg latents.SceneConfig
	if err := json.Unmarshal([]byte(config), &cfg); err != nil {
		return fmt.Errorf("unmarshal scene config: %w", err)
	}
	s.Config = &cfg
	s.Rendered = rendered == 1
	if result.Valid {
		var res render.Result
		if err := json.Unmarshal([]byte(result.String), &res); err != nil {
			return fmt.Errorf("unmarshal render result: %w", err)
		}
		s.Result = &res
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return nil
}

func (r *SQLiteRepository) CountScenes(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scenes").Scan(&count)
	return count, err
}

func (r *SQLiteRepository) MarkSceneRendered(ctx context.Context, id string, result *render.Result) error {
	res, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal render result: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE scenes SET rendered = 1, render_result = ? WHERE id = ?
	`, string(res), id)
	return err
}

func (r *SQLiteRepository) CreateJob(ctx context.Context, job *Job) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, type, status, dataset_id, progress, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.Type, job.Status, nullString(job.DatasetID), job.Progress, nullString(job.Error),
		job.CreatedAt.Format(time.RFC3339), job.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetJob(ctx context.Context, id string) (*Job, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, status, dataset_id, progress, error, created_at, updated_at
		FROM jobs WHERE id = ?
	`, id)

	var j Job
	var datasetID, errMsg sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&j.ID, &j.Type, &j.Status, &datasetID, &j.Progress, &errMsg, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	j.DatasetID = datasetID.String
	j.Error = errMsg.String
	j.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	j.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &j, nil
}

func (r *SQLiteRepository) ListJobs(ctx context.Context, limit int) ([]*Job, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, status, dataset_id, progress, error, created_at, updated_at
		FROM jobs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanJobs(rows)
}

func (r *SQLiteRepository) ListPendingJobs(ctx context.Context) ([]*Job, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, status, dataset_id, progress, error, created_at, updated_at
		FROM jobs WHERE status = ? ORDER BY created_at ASC
	`, JobStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanJobs(rows)
}

func (r *SQLiteRepository) scanJobs(rows *sql.Rows) ([]*Job, error) {
	var jobs []*Job
	for rows.Next() {
		var j Job
		var datasetID, errMsg sql.NullString
		var createdAt, updatedAt string

		if err := rows.Scan(&j.ID, &j.Type, &j.Status, &datasetID, &j.Progress, &errMsg, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		j.DatasetID = datasetID.String
		j.Error = errMsg.String
		j.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		j.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}

func (r *SQLiteRepository) UpdateJobStatus(ctx context.Context, id, status, errorMsg string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = ?, error = ?, updated_at = ? WHERE id = ?
	`, status, nullString(errorMsg), time.Now().Format(time.RFC3339), id)
	return err
}

func (r *SQLiteRepository) UpdateJobProgress(ctx context.Context, id string, progress int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET progress = ?, updated_at = ? WHERE id = ?
	`, progress, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
