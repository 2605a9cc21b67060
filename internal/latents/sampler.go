package latents

import (
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Registry is the asset catalog the sampler draws identifiers from. Lookups
// must be deterministic for the process lifetime: the per-scene stream only
// reproduces a scene if the registry returns the same ordered pools every
// call.
type Registry interface {
	// ShapeIDs returns the ordered identifier catalog for an asset source.
	ShapeIDs(source string) ([]string, error)
	// PickHDRI returns one HDRI identifier chosen uniformly with the
	// caller-supplied stream, so the choice participates in the seed's
	// reproducibility chain.
	PickHDRI(rng *rand.Rand) (string, error)
	// TextureImages returns the ordered list of photographic texture assets.
	TextureImages() ([]string, error)
}

// Sampler converts dataset parameters into fully-specified scene
// configurations. It is stateless apart from the read-only registry, so one
// Sampler may be shared across goroutines.
type Sampler struct {
	assets Registry
	logger *slog.Logger
}

func NewSampler(reg Registry, logger *slog.Logger) *Sampler {
	return &Sampler{assets: reg, logger: logger}
}

// SampleDataset validates params once, draws one distinct unpredictable seed
// per scene, and returns one SceneConfig per seed. Any error aborts the
// whole batch; a partial scene list is never returned.
func (s *Sampler) SampleDataset(params *DatasetParameters) ([]*SceneConfig, error) {
	seedRng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return s.SampleDatasetWithSeeds(params, seedRng)
}

// SampleDatasetWithSeeds is SampleDataset with the top-level seed stream
// supplied by the caller. seedRng drives only the distinct-seed draw;
// everything inside a scene is derived from that scene's own seed.
func (s *Sampler) SampleDatasetWithSeeds(params *DatasetParameters, seedRng *rand.Rand) ([]*SceneConfig, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	seeds, err := GenerateSeeds(seedRng, params.NumScenes, SeedPool)
	if err != nil {
		return nil, err
	}

	scenes := make([]*SceneConfig, 0, len(seeds))
	for _, seed := range seeds {
		cfg, err := s.SampleScene(params, seed)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, cfg)
	}

	if s.logger != nil {
		s.logger.Info("sampled dataset",
			"scenes", len(scenes),
			"asset_source", params.AssetSource,
			"lighting", params.Lighting,
			"hdri_world", params.HDRIWorld,
		)
	}
	return scenes, nil
}

// SampleScene builds one SceneConfig from params and a seed. Two calls with
// the same params and seed produce identical configs. Every randomized
// attribute consumes from one seeded stream in a fixed order; that order is
// part of the contract, since reordering draws changes every downstream
// sample without raising an error.
func (s *Sampler) SampleScene(params *DatasetParameters, seed int64) (*SceneConfig, error) {
	rng := rand.New(rand.NewSource(seed))

	cfg := &SceneConfig{
		Seed:              seed,
		Resolution:        [2]int{params.Resolution[0], params.Resolution[1]},
		SpawnRegion:       [2]Vec3{vec3(params.SpawnRegion[0]), vec3(params.SpawnRegion[1])},
		HDRIWorld:         params.HDRIWorld,
		CameraPosition:    vec3(params.CameraPosition),
		CameraLookAt:      vec3(params.CameraLookAt),
		CameraFocalLength: params.CameraFocalLength,
		CameraSensorWidth: params.CameraSensorWidth,
		FloorScale:        vec3(params.FloorScale),
		FloorPosition:     vec3(params.FloorPosition),
		FloorFriction:     params.FloorFriction,
		FloorRestitution:  params.FloorRestitution,
		VelocityRange:     [2]Vec3{vec3(params.VelocityRange[0]), vec3(params.VelocityRange[1])},
		AssetSource:       params.AssetSource,
	}

	// World model: an HDRI dome needs only its asset id; a textured floor
	// needs a material and a texture. The HDRI path never consults
	// background_type.
	if params.HDRIWorld {
		id, err := s.assets.PickHDRI(rng)
		if err != nil {
			return nil, err
		}
		cfg.HDRIID = &id
	} else {
		cfg.BGMaterial = sampleMaterial(rng)

		var bgKind TextureKind
		switch params.BackgroundType {
		case BackgroundArtificial:
			bgKind = choice(rng, texturePalette)
		case BackgroundRealistic:
			bgKind = TextureImage
		default:
			return nil, &InvalidParameterError{Field: "background_type", Reason: `must be "artificial" or "realistic"`}
		}
		tex, err := s.sampleTexture(bgKind, rng, true)
		if err != nil {
			return nil, err
		}
		cfg.BGTexture = tex
	}

	// Lighting: a sun gets a fresh xy position and an ambient level; an
	// HDRI-lit world needs neither.
	switch params.Lighting {
	case LightingSun:
		sun := vec3(params.SunPosition)
		sun[0] = uniform(rng, -1, 1)
		sun[1] = uniform(rng, -1, 1)
		cfg.SunPosition = &sun
		ambient := uniform(rng, 0.4, 0.7)
		cfg.AmbientIllumination = &ambient
		cfg.Lighting = LightingSun
	case LightingAmbientHDRI:
		cfg.Lighting = LightingAmbientHDRI
	default:
		return nil, &InvalidParameterError{Field: "lighting", Reason: `must be "sun" or "ambient_hdri"`}
	}

	cfg.NumObjects = intBetween(rng, params.MinNumObjects, params.MaxNumObjects+1)
	n := cfg.NumObjects

	var shapeIDs []string
	var scaleLo, scaleHi float64
	switch params.AssetSource {
	case SourceBasicShapes:
		ids, err := s.assets.ShapeIDs(SourceBasicShapes)
		if err != nil {
			return nil, err
		}
		shapeIDs, scaleLo, scaleHi = ids, 0.6, 1.2
	case SourceScannedObjects:
		ids, err := s.assets.ShapeIDs(SourceScannedObjects)
		if err != nil {
			return nil, err
		}
		shapeIDs, scaleLo, scaleHi = ids, 6.0, 10.0
	default:
		return nil, &InvalidParameterError{Field: "asset_source", Reason: `must be "basic_shapes" or "scanned_objects"`}
	}

	cfg.ObjectShapes = make([]string, n)
	for i := range cfg.ObjectShapes {
		cfg.ObjectShapes[i] = choice(rng, shapeIDs)
	}
	cfg.ObjectScales = make([]float64, n)
	for i := range cfg.ObjectScales {
		cfg.ObjectScales[i] = uniform(rng, scaleLo, scaleHi)
	}

	cfg.ObjectAngles = make([]float64, n)
	for i := range cfg.ObjectAngles {
		cfg.ObjectAngles[i] = uniform(rng, 0, 2*math.Pi)
	}
	cfg.ObjectAxes = make([]string, n)
	for i := range cfg.ObjectAxes {
		cfg.ObjectAxes[i] = choice(rng, RotationAxes)
	}

	cfg.ObjectQuaternions = make([]Quaternion, n)
	for i := range cfg.ObjectQuaternions {
		q, err := AxisAngleQuaternion(cfg.ObjectAxes[i], cfg.ObjectAngles[i])
		if err != nil {
			return nil, err
		}
		cfg.ObjectQuaternions[i] = q
	}

	cfg.ObjectTextures = make([]*Texture, n)
	for i := range cfg.ObjectTextures {
		tex, err := s.sampleTexture(choice(rng, texturePalette), rng, false)
		if err != nil {
			return nil, err
		}
		cfg.ObjectTextures[i] = tex
	}
	cfg.ObjectMaterials = make([]*Material, n)
	for i := range cfg.ObjectMaterials {
		cfg.ObjectMaterials[i] = sampleMaterial(rng)
	}

	return cfg, nil
}
