package api

import (
	"time"

	"github.com/renderstim/stimgen/internal/dataset"
	"github.com/renderstim/stimgen/internal/latents"
	"github.com/renderstim/stimgen/internal/render"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	UptimeS  int64  `json:"uptime_s"`
	DeviceID string `json:"device_id"`
}

type StatusResponse struct {
	State         string       `json:"state"`
	LastError     string       `json:"last_error,omitempty"`
	DatasetsCount int          `json:"datasets_count"`
	ScenesCount   int          `json:"scenes_count"`
	JobsRunning   int          `json:"jobs_running"`
	ActiveJob     *JobResponse `json:"active_job,omitempty"`
}

type DatasetResponse struct {
	ID        string                     `json:"id"`
	Comment   string                     `json:"comment,omitempty"`
	NumScenes int                        `json:"num_scenes"`
	Params    *latents.DatasetParameters `json:"params"`
	CreatedAt string                     `json:"created_at"`
}

type DatasetsResponse struct {
	Datasets []DatasetResponse `json:"datasets"`
}

type SceneResponse struct {
	ID        string               `json:"id"`
	DatasetID string               `json:"dataset_id"`
	Index     int                  `json:"index"`
	Seed      int64                `json:"seed"`
	Config    *latents.SceneConfig `json:"config"`
	Rendered  bool                 `json:"rendered"`
	Result    *render.Result       `json:"result,omitempty"`
}

type ScenesResponse struct {
	Scenes []SceneResponse `json:"scenes"`
}

type RenderResponse struct {
	JobID string `json:"job_id"`
}

type JobResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	DatasetID string `json:"dataset_id,omitempty"`
	Progress  int    `json:"progress"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type JobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type ShapesResponse struct {
	Source string   `json:"source"`
	Shapes []string `json:"shapes"`
}

type HDRIsResponse struct {
	HDRIs []string `json:"hdris"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func DatasetToResponse(d *dataset.Dataset) DatasetResponse {
	return DatasetResponse{
		ID:        d.ID,
		Comment:   d.Comment,
		NumScenes: d.NumScenes,
		Params:    d.Params,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}

func SceneToResponse(s *dataset.Scene) SceneResponse {
	return SceneResponse{
		ID:        s.ID,
		DatasetID: s.DatasetID,
		Index:     s.Index,
		Seed:      s.Seed,
		Config:    s.Config,
		Rendered:  s.Rendered,
		Result:    s.Result,
	}
}

func JobToResponse(j *dataset.Job) JobResponse {
	return JobResponse{
		ID:        j.ID,
		Type:      j.Type,
		Status:    j.Status,
		DatasetID: j.DatasetID,
		Progress:  j.Progress,
		Error:     j.Error,
		CreatedAt: j.CreatedAt.Format(time.RFC3339),
		UpdatedAt: j.UpdatedAt.Format(time.RFC3339),
	}
}
