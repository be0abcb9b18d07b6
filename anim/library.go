// Package anim is the presentation side of character animation: a library of
// clips addressed by logical name, and the Player component that plays one
// of them at a time.
package anim

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownClip is returned by Library.Load for names missing from the
// manifest.
var ErrUnknownClip = errors.New("anim: unknown clip")

//go:embed clips.yaml
var defaultManifest []byte

// Handle is an opaque reference to a clip in a Library. The zero Handle
// refers to nothing.
type Handle struct {
	id uint32
}

func (h Handle) IsZero() bool {
	return h.id == 0
}

type Clip struct {
	Name   string  `yaml:"name"`
	Label  string  `yaml:"label"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
}

// Duration is the clip length in seconds.
func (c Clip) Duration() float64 {
	if c.FPS <= 0 {
		return 0
	}
	return float64(c.Frames) / c.FPS
}

type Manifest struct {
	Clips []Clip `yaml:"clips"`
}

func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("anim: parse manifest: %w", err)
	}
	return m, nil
}

// Library resolves clip names to handles.
type Library struct {
	clips  []Clip
	byName map[string]Handle
}

func NewLibrary(m Manifest) (*Library, error) {
	lib := &Library{byName: make(map[string]Handle, len(m.Clips))}
	for _, clip := range m.Clips {
		if clip.Name == "" {
			return nil, errors.New("anim: clip without name")
		}
		if clip.Frames <= 0 || clip.FPS <= 0 {
			return nil, fmt.Errorf("anim: clip %q: frames and fps must be positive", clip.Name)
		}
		if _, dup := lib.byName[clip.Name]; dup {
			return nil, fmt.Errorf("anim: duplicate clip %q", clip.Name)
		}
		lib.clips = append(lib.clips, clip)
		lib.byName[clip.Name] = Handle{id: uint32(len(lib.clips))}
	}
	return lib, nil
}

// DefaultLibrary builds the library from the embedded clips.yaml.
func DefaultLibrary() (*Library, error) {
	m, err := ParseManifest(defaultManifest)
	if err != nil {
		return nil, err
	}
	return NewLibrary(m)
}

// Load returns the handle for name.
func (l *Library) Load(name string) (Handle, error) {
	h, ok := l.byName[name]
	if !ok {
		return Handle{}, fmt.Errorf("%w %q", ErrUnknownClip, name)
	}
	return h, nil
}

// Clip returns the clip behind h.
func (l *Library) Clip(h Handle) (Clip, bool) {
	if h.IsZero() || int(h.id) > len(l.clips) {
		return Clip{}, false
	}
	return l.clips[h.id-1], true
}

// Name returns the logical name of h, or "" for an unknown handle.
func (l *Library) Name(h Handle) string {
	clip, _ := l.Clip(h)
	return clip.Name
}

func (l *Library) Len() int {
	return len(l.clips)
}
