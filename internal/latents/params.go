// Package latents samples fully-specified scene configurations from
// high-level dataset parameters. Every randomized attribute of a scene is
// derived from a single seeded stream, so a scene is reproducible from its
// seed alone.
package latents

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lighting modes.
const (
	LightingSun         = "sun"
	LightingAmbientHDRI = "ambient_hdri"
)

// Background types. Only consulted when the world is not HDRI-lit.
const (
	BackgroundArtificial = "artificial"
	BackgroundRealistic  = "realistic"
)

// Asset sources.
const (
	SourceBasicShapes    = "basic_shapes"
	SourceScannedObjects = "scanned_objects"
)

// DatasetParameters is the immutable input to the sampler. Geometric fields
// are slice-typed because parameters arrive from YAML or JSON where lengths
// are not guaranteed; Validate rejects malformed shapes before any sampling
// occurs.
type DatasetParameters struct {
	NumScenes         int         `json:"num_scenes" yaml:"num_scenes"`
	Resolution        []int       `json:"resolution" yaml:"resolution"`
	MinNumObjects     int         `json:"min_num_objects" yaml:"min_num_objects"`
	MaxNumObjects     int         `json:"max_num_objects" yaml:"max_num_objects"`
	SpawnRegion       [][]float64 `json:"spawn_region" yaml:"spawn_region"`
	Lighting          string      `json:"lighting" yaml:"lighting"`
	SunPosition       []float64   `json:"sun_position" yaml:"sun_position"`
	HDRIWorld         bool        `json:"hdri_world" yaml:"hdri_world"`
	CameraPosition    []float64   `json:"camera_position" yaml:"camera_position"`
	CameraLookAt      []float64   `json:"camera_look_at" yaml:"camera_look_at"`
	CameraFocalLength float64     `json:"camera_focal_length" yaml:"camera_focal_length"`
	CameraSensorWidth float64     `json:"camera_sensor_width" yaml:"camera_sensor_width"`
	FloorScale        []float64   `json:"floor_scale" yaml:"floor_scale"`
	FloorPosition     []float64   `json:"floor_position" yaml:"floor_position"`
	FloorFriction     float64     `json:"floor_friction" yaml:"floor_friction"`
	FloorRestitution  float64     `json:"floor_restitution" yaml:"floor_restitution"`
	BackgroundType    string      `json:"background_type" yaml:"background_type"`
	AssetSource       string      `json:"asset_source" yaml:"asset_source"`
	VelocityRange     [][]float64 `json:"velocity_range" yaml:"velocity_range"`
	Comment           string      `json:"comment,omitempty" yaml:"comment"`
}

// DefaultParameters returns the reference parameter set: a 256x144 sun-lit
// scene over a textured floor with 3 to 6 basic shapes.
func DefaultParameters() *DatasetParameters {
	return &DatasetParameters{
		NumScenes:         100,
		Resolution:        []int{256, 144},
		MinNumObjects:     3,
		MaxNumObjects:     6,
		SpawnRegion:       [][]float64{{-2.5, -3.0, 0.2}, {2.5, 3.0, 1.5}},
		Lighting:          LightingSun,
		SunPosition:       []float64{0.0, 0.0, 7.0},
		HDRIWorld:         false,
		CameraPosition:    []float64{0.0, -8.0, 3.6},
		CameraLookAt:      []float64{0.0, 0.0, 0.5},
		CameraFocalLength: 32.0,
		CameraSensorWidth: 30.0,
		FloorScale:        []float64{20.0, 40.0, 0.01},
		FloorPosition:     []float64{0.0, 0.0, 0.0},
		FloorFriction:     0.3,
		FloorRestitution:  0.5,
		BackgroundType:    BackgroundArtificial,
		AssetSource:       SourceBasicShapes,
		VelocityRange:     [][]float64{{-4.0, -4.0, 0.0}, {4.0, 4.0, 0.0}},
	}
}

// LoadParameters reads a YAML parameter file over the defaults, so a file
// only needs to name the fields it overrides.
func LoadParameters(path string) (*DatasetParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parameters: %w", err)
	}
	params := DefaultParameters()
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("parse parameters: %w", err)
	}
	return params, nil
}

// Validate checks the structural and range invariants of the parameters.
// It runs once per dataset call, before seed generation, so a malformed
// request never produces partial output. No side effects.
func (p *DatasetParameters) Validate() error {
	if p.NumScenes < 0 {
		return &InvalidParameterError{Field: "num_scenes", Reason: "must be non-negative"}
	}
	if len(p.Resolution) != 2 {
		return &InvalidParameterError{Field: "resolution", Reason: "must be [height, width], e.g. [256, 144]"}
	}
	if p.Resolution[0] <= 0 || p.Resolution[1] <= 0 {
		return &InvalidParameterError{Field: "resolution", Reason: "height and width must be positive"}
	}
	if p.MinNumObjects < 0 {
		return &InvalidParameterError{Field: "min_num_objects", Reason: "must be non-negative"}
	}
	if p.MaxNumObjects < p.MinNumObjects {
		return &InvalidParameterError{Field: "max_num_objects", Reason: "must be >= min_num_objects"}
	}
	if len(p.SpawnRegion) != 2 {
		return &InvalidParameterError{Field: "spawn_region", Reason: "must be two corner points, e.g. [[-2.5, -3.0, 0.2], [2.5, 3.0, 1.5]]"}
	}
	for _, corner := range p.SpawnRegion {
		if len(corner) != 3 {
			return &InvalidParameterError{Field: "spawn_region", Reason: "corner points must have 3 components"}
		}
	}
	for i := 0; i < 3; i++ {
		if p.SpawnRegion[0][i] > p.SpawnRegion[1][i] {
			return &InvalidParameterError{Field: "spawn_region", Reason: "min corner must be component-wise <= max corner"}
		}
	}
	if len(p.SunPosition) != 3 {
		return &InvalidParameterError{Field: "sun_position", Reason: "must have 3 components, e.g. [0.0, 0.0, 7.0]"}
	}
	if len(p.CameraPosition) != 3 {
		return &InvalidParameterError{Field: "camera_position", Reason: "must have 3 components, e.g. [0.0, -8.0, 3.6]"}
	}
	if len(p.CameraLookAt) != 3 {
		return &InvalidParameterError{Field: "camera_look_at", Reason: "must have 3 components, e.g. [0.0, 0.0, 0.5]"}
	}
	if len(p.FloorScale) != 3 {
		return &InvalidParameterError{Field: "floor_scale", Reason: "must have 3 components, e.g. [20.0, 40.0, 0.01]"}
	}
	if len(p.FloorPosition) != 3 {
		return &InvalidParameterError{Field: "floor_position", Reason: "must have 3 components, e.g. [0.0, 0.0, 0.0]"}
	}
	if p.FloorFriction < 0.0 || p.FloorFriction > 1.0 {
		return &InvalidParameterError{Field: "floor_friction", Reason: "must be within [0.0, 1.0]"}
	}
	if p.FloorRestitution < 0.0 || p.FloorRestitution > 1.0 {
		return &InvalidParameterError{Field: "floor_restitution", Reason: "must be within [0.0, 1.0]"}
	}
	if len(p.VelocityRange) != 2 {
		return &InvalidParameterError{Field: "velocity_range", Reason: "must be two 3D vectors"}
	}
	for _, v := range p.VelocityRange {
		if len(v) != 3 {
			return &InvalidParameterError{Field: "velocity_range", Reason: "vectors must have 3 components"}
		}
	}
	return nil
}
