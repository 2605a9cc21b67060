package latents

import "math"

// Vec3 is a 3D point or vector.
type Vec3 [3]float64

// Quaternion is a rotation in (w, x, y, z) order, unit length.
type Quaternion [4]float64

// RotationAxes are the axes an object rotation can be drawn around.
var RotationAxes = []string{"x", "y", "z"}

// AxisAngleQuaternion derives the unit quaternion for a rotation of angle
// radians around a single coordinate axis: w = cos(angle/2) and the chosen
// axis component is sin(angle/2), the others zero.
func AxisAngleQuaternion(axis string, angle float64) (Quaternion, error) {
	var q Quaternion
	q[0] = math.Cos(angle / 2)
	s := math.Sin(angle / 2)
	switch axis {
	case "x":
		q[1] = s
	case "y":
		q[2] = s
	case "z":
		q[3] = s
	default:
		return Quaternion{}, &InvalidParameterError{Field: "axis", Reason: "must be one of x, y, z"}
	}
	return q, nil
}

// SceneConfig is one fully-resolved scene record. It is created in a single
// sampling pass, never mutated by the sampler afterwards, and handed by
// value to the rendering collaborator, which may append realized object
// positions and depth bounds.
//
// HDRIID is set iff HDRIWorld; BGMaterial and BGTexture are set iff
// !HDRIWorld. SunPosition and AmbientIllumination are set iff Lighting is
// "sun". The per-object slices are parallel arrays of length NumObjects.
type SceneConfig struct {
	Seed        int64   `json:"seed"`
	Resolution  [2]int  `json:"resolution"`
	SpawnRegion [2]Vec3 `json:"spawn_region"`

	HDRIWorld  bool      `json:"hdri_world"`
	HDRIID     *string   `json:"hdri_id"`
	BGMaterial *Material `json:"bg_material,omitempty"`
	BGTexture  *Texture  `json:"bg_texture,omitempty"`

	Lighting            string   `json:"lighting"`
	SunPosition         *Vec3    `json:"sun_position"`
	AmbientIllumination *float64 `json:"ambient_illumination"`

	CameraPosition    Vec3    `json:"camera_position"`
	CameraLookAt      Vec3    `json:"camera_look_at"`
	CameraFocalLength float64 `json:"camera_focal_length"`
	CameraSensorWidth float64 `json:"camera_sensor_width"`

	FloorScale       Vec3    `json:"floor_scale"`
	FloorPosition    Vec3    `json:"floor_position"`
	FloorFriction    float64 `json:"floor_friction"`
	FloorRestitution float64 `json:"floor_restitution"`
	VelocityRange    [2]Vec3 `json:"velocity_range"`

	NumObjects  int    `json:"num_objects"`
	AssetSource string `json:"asset_source"`

	ObjectShapes      []string     `json:"object_shapes"`
	ObjectScales      []float64    `json:"object_scales"`
	ObjectAngles      []float64    `json:"object_angles_of_rotation"`
	ObjectAxes        []string     `json:"object_axes_of_rotation"`
	ObjectQuaternions []Quaternion `json:"object_quaternions"`
	ObjectTextures    []*Texture   `json:"object_textures"`
	ObjectMaterials   []*Material  `json:"object_materials"`
}

func vec3(s []float64) Vec3 {
	return Vec3{s[0], s[1], s[2]}
}
