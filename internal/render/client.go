// Package render is the boundary to the rendering/physics collaborator.
// The sampler never touches pixels: each SceneConfig is handed by value to a
// Client, which returns the channels it produced plus the fields it is
// contracted to add (realized object positions and depth bounds).
package render

import (
	"context"
	"log/slog"

	"github.com/renderstim/stimgen/internal/latents"
)

// DefaultChannels are the image channels the collaborator is expected to
// produce for every scene.
var DefaultChannels = []string{"color", "segmentation", "object_coordinates", "normal", "depth"}

type Client interface {
	RenderScene(ctx context.Context, cfg *latents.SceneConfig) (*Result, error)
}

// DepthScaling holds the depth bounds the collaborator used to normalize
// the depth channel.
type DepthScaling struct {
	MinDepth float64 `json:"min_depth"`
	MaxDepth float64 `json:"max_depth"`
}

// Result is the augmentation a collaborator returns for one scene.
// ObjectPositions has length num_objects.
type Result struct {
	Channels        []string       `json:"channels"`
	ObjectPositions []latents.Vec3 `json:"object_positions"`
	DepthScaling    DepthScaling   `json:"depth_scaling"`
}

// StubClient is used when no renderer is configured. It fabricates an empty
// result so render jobs can be exercised without a collaborator.
type StubClient struct {
	logger *slog.Logger
}

func NewStubClient(logger *slog.Logger) *StubClient {
	return &StubClient{logger: logger}
}

func (c *StubClient) RenderScene(ctx context.Context, cfg *latents.SceneConfig) (*Result, error) {
	if c.logger != nil {
		c.logger.Info("render stub: scene render requested", "seed", cfg.Seed, "num_objects", cfg.NumObjects)
	}
	return &Result{
		Channels:        DefaultChannels,
		ObjectPositions: make([]latents.Vec3, cfg.NumObjects),
	}, nil
}
