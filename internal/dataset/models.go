package dataset

import (
	"time"

	"github.com/google/uuid"
	"github.com/renderstim/stimgen/internal/latents"
	"github.com/renderstim/stimgen/internal/render"
)

// Dataset is one sampled batch: its parameters plus one scene row per seed.
type Dataset struct {
	ID        string                     `json:"id"`
	Comment   string                     `json:"comment,omitempty"`
	NumScenes int                        `json:"num_scenes"`
	Params    *latents.DatasetParameters `json:"params"`
	CreatedAt time.Time                  `json:"created_at"`
}

// Scene is one persisted scene config, with the renderer's augmentation
// once the scene has been rendered.
type Scene struct {
	ID        string               `json:"id"`
	DatasetID string               `json:"dataset_id"`
	Index     int                  `json:"index"`
	Seed      int64                `json:"seed"`
	Config    *latents.SceneConfig `json:"config"`
	Rendered  bool                 `json:"rendered"`
	Result    *render.Result       `json:"result,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

const (
	JobTypeRender = "render"

	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

type Job struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	DatasetID string    `json:"dataset_id,omitempty"`
	Progress  int       `json:"progress"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func NewID() string {
	return uuid.NewString()
}
