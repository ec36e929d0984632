package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// SceneKey identifies a built scene.
	SceneKey(docHash string, opts SceneKeyOpts) string
	// ArtifactKey identifies a rendered output of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts holds the build inputs that are not part of the document.
type SceneKeyOpts struct {
	Kind   string  `json:"kind,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ArtifactKeyOpts holds the render options of an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Title       string  `json:"title,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	HoverX      float64 `json:"hover_x,omitempty"`
	HoverY      float64 `json:"hover_y,omitempty"`
	Hovered     bool    `json:"hovered,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Background  string  `json:"background,omitempty"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SceneKey(docHash string, opts SceneKeyOpts) string {
	return hashKey("scene", docHash, opts)
}

func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, sceneHash, opts)
}

// SizeKey formats a size for log output.
func SizeKey(w, h float64) string { return fmt.Sprintf("%gx%g", w, h) }
