package latents

import "math/rand"

// Material holds principled-BSDF surface parameters for one surface.
// Color is RGBA with components in [0, 1].
type Material struct {
	Color                 [4]float64 `json:"color"`
	Metallic              float64    `json:"metallic"`
	Specular              float64    `json:"specular"`
	SpecularTint          float64    `json:"specular_tint"`
	Roughness             float64    `json:"roughness"`
	Transmission          float64    `json:"transmission"`
	TransmissionRoughness float64    `json:"transmission_roughness"`
}

// sampleMaterial draws one material from the stream. The base color uses a
// gray strategy (one value in [0.3, 0.9] replicated to RGB, alpha 1) so that
// object identity is carried by texture rather than hue; the remaining
// parameters are uniform in [0, 1]. Draw order is fixed.
func sampleMaterial(rng *rand.Rand) *Material {
	m := &Material{}
	v := uniform(rng, 0.3, 0.9)
	m.Color = [4]float64{v, v, v, 1.0}
	m.Metallic = rng.Float64()
	m.Specular = rng.Float64()
	m.SpecularTint = rng.Float64()
	m.Roughness = rng.Float64()
	m.Transmission = rng.Float64()
	m.TransmissionRoughness = rng.Float64()
	return m
}
