// Package assets exposes the catalogs of renderable assets: the fixed
// basic-shape set, the scanned-object manifest, the HDRI manifest, and the
// photographic texture images. Manifests are external read-only state loaded
// at most once per process.
package assets

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/renderstim/stimgen/internal/latents"
)

// Manifest filenames under the assets directory.
const (
	HDRIManifestName    = "HDRI_haven.json"
	ScannedManifestName = "GSO.json"
	textureDirName      = "textures"
)

// BasicShapeIDs is the fixed catalog of built-in shape assets.
var BasicShapeIDs = []string{
	"cube",
	"cylinder",
	"sphere",
	"cone",
	"torus",
	"gear",
	"torus_knot",
	"sponge",
	"spot",
	"suzanne",
}

// ManifestError reports a missing, unreadable, or malformed asset manifest.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("asset manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// manifest is the on-disk shape of HDRI_haven.json and GSO.json: asset
// identifier to opaque metadata.
type manifest struct {
	Assets map[string]json.RawMessage `json:"assets"`
}

// FileRegistry loads asset catalogs from a directory. Each manifest is read
// lazily on first use and cached for the process lifetime; identifier pools
// are sorted so the same manifest always yields the same ordered pool and a
// seeded draw over it stays reproducible.
type FileRegistry struct {
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	hdriIDs []string
	gsoIDs  []string
	images  []string
}

func NewFileRegistry(dir string, logger *slog.Logger) *FileRegistry {
	return &FileRegistry{dir: dir, logger: logger}
}

// ShapeIDs returns the ordered identifier catalog for an asset source.
func (r *FileRegistry) ShapeIDs(source string) ([]string, error) {
	switch source {
	case latents.SourceBasicShapes:
		return BasicShapeIDs, nil
	case latents.SourceScannedObjects:
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.gsoIDs == nil {
			ids, err := r.loadManifest(ScannedManifestName)
			if err != nil {
				return nil, err
			}
			r.gsoIDs = ids
		}
		return r.gsoIDs, nil
	default:
		return nil, &latents.InvalidParameterError{Field: "asset_source", Reason: fmt.Sprintf("unknown asset source %q", source)}
	}
}

// HDRIIDs returns the ordered HDRI identifier pool, loading the manifest on
// first use.
func (r *FileRegistry) HDRIIDs() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hdriIDs == nil {
		ids, err := r.loadManifest(HDRIManifestName)
		if err != nil {
			return nil, err
		}
		r.hdriIDs = ids
	}
	return r.hdriIDs, nil
}

// PickHDRI returns one HDRI identifier chosen uniformly with the supplied
// stream.
func (r *FileRegistry) PickHDRI(rng *rand.Rand) (string, error) {
	ids, err := r.HDRIIDs()
	if err != nil {
		return "", err
	}
	return ids[rng.Intn(len(ids))], nil
}

// TextureImages lists the photographic texture assets under the textures
// subdirectory, once, sorted by name.
func (r *FileRegistry) TextureImages() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.images != nil {
		return r.images, nil
	}

	dir := filepath.Join(r.dir, textureDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ManifestError{Path: dir, Err: err}
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	if len(images) == 0 {
		return nil, &ManifestError{Path: dir, Err: fmt.Errorf("no texture images found")}
	}
	sort.Strings(images)

	r.images = images
	if r.logger != nil {
		r.logger.Info("loaded texture images", "dir", dir, "count", len(images))
	}
	return r.images, nil
}

func (r *FileRegistry) loadManifest(name string) ([]string, error) {
	path := filepath.Join(r.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}
	if len(m.Assets) == 0 {
		return nil, &ManifestError{Path: path, Err: fmt.Errorf("manifest has no assets")}
	}

	ids := make([]string, 0, len(m.Assets))
	for id := range m.Assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if r.logger != nil {
		r.logger.Info("loaded asset manifest", "path", path, "assets", len(ids))
	}
	return ids, nil
}

// StaticRegistry is an in-memory registry for tests and embedded use.
type StaticRegistry struct {
	Shapes map[string][]string
	HDRIs  []string
	Images []string
}

func (r *StaticRegistry) ShapeIDs(source string) ([]string, error) {
	if source == latents.SourceBasicShapes {
		if ids, ok := r.Shapes[source]; ok {
			return ids, nil
		}
		return BasicShapeIDs, nil
	}
	ids, ok := r.Shapes[source]
	if !ok {
		return nil, &latents.InvalidParameterError{Field: "asset_source", Reason: fmt.Sprintf("unknown asset source %q", source)}
	}
	return ids, nil
}

// HDRIIDs returns the injected HDRI pool.
func (r *StaticRegistry) HDRIIDs() ([]string, error) {
	if len(r.HDRIs) == 0 {
		return nil, &ManifestError{Path: "static", Err: fmt.Errorf("no HDRI assets")}
	}
	return r.HDRIs, nil
}

func (r *StaticRegistry) PickHDRI(rng *rand.Rand) (string, error) {
	if len(r.HDRIs) == 0 {
		return "", &ManifestError{Path: "static", Err: fmt.Errorf("no HDRI assets")}
	}
	return r.HDRIs[rng.Intn(len(r.HDRIs))], nil
}

func (r *StaticRegistry) TextureImages() ([]string, error) {
	if len(r.Images) == 0 {
		return nil, &ManifestError{Path: "static", Err: fmt.Errorf("no texture images")}
	}
	return r.Images, nil
}
