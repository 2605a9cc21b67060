package latents

import "math/rand"

// TextureKind names one entry of the procedural texture palette.
type TextureKind string

const (
	TextureNone           TextureKind = "none"
	TextureClouds         TextureKind = "clouds"
	TextureDistortedNoise TextureKind = "distorted_noise"
	TextureMagic          TextureKind = "magic"
	TextureMarble         TextureKind = "marble"
	TextureMusgrave       TextureKind = "musgrave"
	TextureStucci         TextureKind = "stucci"
	TextureVoronoi        TextureKind = "voronoi"
	TextureWood           TextureKind = "wood"
	TextureImage          TextureKind = "image"
)

// texturePalette is the pool drawn from when the kind is not forced. The
// image kind is excluded: it is reserved for realistic backgrounds.
var texturePalette = []TextureKind{
	TextureNone,
	TextureClouds,
	TextureDistortedNoise,
	TextureMagic,
	TextureMarble,
	TextureMusgrave,
	TextureStucci,
	TextureVoronoi,
	TextureWood,
}

// Tile sizes for generated texture images. Backgrounds cover the whole
// floor plane and need a much larger tile than a small object.
const (
	backgroundTextureSize = 3192
	objectTextureSize     = 256
)

// Noise basis pools per kind.
var (
	cloudsNoiseBasis = []string{
		"IMPROVED_PERLIN", "VORONOI_F1", "VORONOI_F2", "VORONOI_F3",
		"VORONOI_F2_F1", "VORONOI_CRACKLE",
	}
	distortedNoiseBasis = []string{
		"BLENDER_ORIGINAL", "ORIGINAL_PERLIN", "VORONOI_F2", "VORONOI_F4",
		"VORONOI_CRACKLE", "CELL_NOISE",
	}
	marbleNoiseBasis = []string{
		"BLENDER_ORIGINAL", "VORONOI_F2", "VORONOI_CRACKLE", "CELL_NOISE",
	}
	marbleTypes       = []string{"SOFT", "SHARP"}
	musgraveNoiseBasis = []string{
		"BLENDER_ORIGINAL", "VORONOI_F1", "VORONOI_F2_F1", "VORONOI_CRACKLE",
		"CELL_NOISE",
	}
	musgraveTypes = []string{"MULTIFRACTAL", "RIDGED_MULTIFRACTAL", "FBM"}
	stucciNoiseBasis = []string{
		"BLENDER_ORIGINAL", "VORONOI_F1", "VORONOI_F2_F1", "VORONOI_CRACKLE",
		"CELL_NOISE",
	}
	stucciTypes            = []string{"PLASTIC", "WALL_IN", "WALL_OUT"}
	voronoiDistanceMetrics = []string{
		"DISTANCE", "DISTANCE_SQUARED", "MANHATTAN", "CHEBYCHEV",
		"MINKOVSKY_HALF", "MINKOVSKY_FOUR", "MINKOVSKY",
	}
	woodNoiseBasis = []string{
		"BLENDER_ORIGINAL", "VORONOI_F1", "VORONOI_CRACKLE", "CELL_NOISE",
	}
)

// Texture is one sampled texture spec: a kind plus exactly one kind-specific
// parameter block (none for the flat-color kind). The same kind always
// yields the same parameter shape.
type Texture struct {
	Kind           TextureKind           `json:"type"`
	Clouds         *CloudsParams         `json:"clouds,omitempty"`
	DistortedNoise *DistortedNoiseParams `json:"distorted_noise,omitempty"`
	Magic          *MagicParams          `json:"magic,omitempty"`
	Marble         *MarbleParams         `json:"marble,omitempty"`
	Musgrave       *MusgraveParams       `json:"musgrave,omitempty"`
	Stucci         *StucciParams         `json:"stucci,omitempty"`
	Voronoi        *VoronoiParams        `json:"voronoi,omitempty"`
	Wood           *WoodParams           `json:"wood,omitempty"`
	Image          *ImageParams          `json:"image,omitempty"`
}

type CloudsParams struct {
	Nabla      float64 `json:"nabla"`
	NoiseDepth int     `json:"noise_depth"`
	NoiseScale int     `json:"noise_scale"`
	NoiseBasis string  `json:"noise_basis"`
	Size       int     `json:"size"`
}

type DistortedNoiseParams struct {
	Nabla           float64 `json:"nabla"`
	Distortion      int     `json:"distortion"`
	NoiseBasis      string  `json:"noise_basis"`
	NoiseScale      int     `json:"noise_scale"`
	NoiseDistortion string  `json:"noise_distortion"`
	Size            int     `json:"size"`
}

type MagicParams struct {
	NoiseDepth int `json:"noise_depth"`
	Turbulence int `json:"turbulence"`
	Size       int `json:"size"`
}

type MarbleParams struct {
	Nabla      float64 `json:"nabla"`
	NoiseDepth int     `json:"noise_depth"`
	NoiseScale int     `json:"noise_scale"`
	NoiseBasis string  `json:"noise_basis"`
	MarbleType string  `json:"marble_type"`
	Turbulence int     `json:"turbulence"`
	Size       int     `json:"size"`
}

type MusgraveParams struct {
	DimensionMax   float64 `json:"dimension_max"`
	Gain           int     `json:"gain"`
	Lacunarity     int     `json:"lacunarity"`
	MusgraveType   string  `json:"musgrave_type"`
	Nabla          float64 `json:"nabla"`
	NoiseBasis     string  `json:"noise_basis"`
	NoiseIntensity int     `json:"noise_intensity"`
	NoiseScale     int     `json:"noise_scale"`
	Octaves        int     `json:"octaves"`
	Offset         int     `json:"offset"`
	Size           int     `json:"size"`
}

type StucciParams struct {
	NoiseBasis string `json:"noise_basis"`
	NoiseScale int    `json:"noise_scale"`
	NoiseType  string `json:"noise_type"`
	StucciType string `json:"stucci_type"`
	Turbulence int    `json:"turbulence"`
	Size       int    `json:"size"`
}

type VoronoiParams struct {
	ColorMode         string  `json:"color_mode"`
	DistanceMetric    string  `json:"distance_metric"`
	MinkovskyExponent int     `json:"minkovsky_exponent"`
	Nabla             float64 `json:"nabla"`
	NoiseScale        int     `json:"noise_scale"`
	Size              int     `json:"size"`
}

type WoodParams struct {
	Nabla      float64 `json:"nabla"`
	NoiseScale int     `json:"noise_scale"`
	Turbulence int     `json:"turbulence"`
	WoodType   string  `json:"wood_type"`
	NoiseBasis string  `json:"noise_basis"`
	Size       int     `json:"size"`
}

type ImageParams struct {
	ImagePath string `json:"image_path"`
}

// sampleTexture draws one texture spec of the given kind. background selects
// the larger tile size. Within each kind the draw order is fixed; the image
// kind draws its path from the registry's texture-image list.
func (s *Sampler) sampleTexture(kind TextureKind, rng *rand.Rand, background bool) (*Texture, error) {
	size := objectTextureSize
	if background {
		size = backgroundTextureSize
	}

	switch kind {
	case TextureClouds:
		return &Texture{Kind: TextureClouds, Clouds: &CloudsParams{
			Nabla:      uniform(rng, 0.001, 0.1),
			NoiseDepth: intBetween(rng, 0, 5),
			NoiseScale: intBetween(rng, 10, 30),
			NoiseBasis: choice(rng, cloudsNoiseBasis),
			Size:       size,
		}}, nil
	case TextureDistortedNoise:
		return &Texture{Kind: TextureDistortedNoise, DistortedNoise: &DistortedNoiseParams{
			Nabla:           uniform(rng, 0.001, 0.1),
			Distortion:      intBetween(rng, 1, 10),
			NoiseBasis:      choice(rng, distortedNoiseBasis),
			NoiseScale:      intBetween(rng, 10, 30),
			NoiseDistortion: choice(rng, distortedNoiseBasis),
			Size:            size,
		}}, nil
	case TextureMagic:
		return &Texture{Kind: TextureMagic, Magic: &MagicParams{
			NoiseDepth: intBetween(rng, 0, 5),
			Turbulence: intBetween(rng, 5, 10),
			Size:       size,
		}}, nil
	case TextureMarble:
		return &Texture{Kind: TextureMarble, Marble: &MarbleParams{
			Nabla:      uniform(rng, 0.001, 0.1),
			NoiseDepth: intBetween(rng, 0, 5),
			NoiseScale: intBetween(rng, 10, 30),
			NoiseBasis: choice(rng, marbleNoiseBasis),
			MarbleType: choice(rng, marbleTypes),
			Turbulence: intBetween(rng, 5, 15),
			Size:       size,
		}}, nil
	case TextureMusgrave:
		return &Texture{Kind: TextureMusgrave, Musgrave: &MusgraveParams{
			DimensionMax:   uniform(rng, 0.001, 2),
			Gain:           intBetween(rng, 1, 6),
			Lacunarity:     intBetween(rng, 1, 6),
			MusgraveType:   choice(rng, musgraveTypes),
			Nabla:          uniform(rng, 0.001, 0.1),
			NoiseBasis:     choice(rng, musgraveNoiseBasis),
			NoiseIntensity: intBetween(rng, 1, 10),
			NoiseScale:     intBetween(rng, 10, 30),
			Octaves:        intBetween(rng, 1, 8),
			Offset:         1,
			Size:           size,
		}}, nil
	case TextureStucci:
		return &Texture{Kind: TextureStucci, Stucci: &StucciParams{
			NoiseBasis: choice(rng, stucciNoiseBasis),
			NoiseScale: intBetween(rng, 10, 30),
			NoiseType:  "HARD_NOISE",
			StucciType: choice(rng, stucciTypes),
			Turbulence: intBetween(rng, 5, 15),
			Size:       size,
		}}, nil
	case TextureVoronoi:
		return &Texture{Kind: TextureVoronoi, Voronoi: &VoronoiParams{
			ColorMode:         "INTENSITY",
			DistanceMetric:    choice(rng, voronoiDistanceMetrics),
			MinkovskyExponent: intBetween(rng, 1, 10),
			Nabla:             uniform(rng, 0.001, 0.1),
			NoiseScale:        intBetween(rng, 10, 30),
			Size:              size,
		}}, nil
	case TextureWood:
		return &Texture{Kind: TextureWood, Wood: &WoodParams{
			Nabla:      uniform(rng, 0.001, 0.1),
			NoiseScale: intBetween(rng, 10, 30),
			Turbulence: intBetween(rng, 5, 15),
			WoodType:   "BANDNOISE",
			NoiseBasis: choice(rng, woodNoiseBasis),
			Size:       size,
		}}, nil
	case TextureImage:
		images, err := s.assets.TextureImages()
		if err != nil {
			return nil, err
		}
		return &Texture{Kind: TextureImage, Image: &ImageParams{
			ImagePath: choice(rng, images),
		}}, nil
	default:
		return &Texture{Kind: TextureNone}, nil
	}
}
