package control

import (
	"fmt"

	"github.com/plus3/puppet/anim"
)

// CatalogSize is the number of clip slots. Slot 0 is loaded but no state
// maps to it.
const CatalogSize = 4

// DefaultClipNames are the clips of the ba.gltf character, in slot order.
var DefaultClipNames = [CatalogSize]string{
	"ba.gltf#Animation2",
	"ba.gltf#Animation1",
	"ba.gltf#Animation0",
	"ba.gltf#Animation3",
}

// ClipLoader resolves a logical clip name to a handle. *anim.Library
// implements it.
type ClipLoader interface {
	Load(name string) (anim.Handle, error)
}

// ClipCatalog maps state codes to clips. It is filled once by
// LoadClipCatalog and has no setters.
type ClipCatalog struct {
	clips [CatalogSize]anim.Handle
	names [CatalogSize]string
}

// LoadClipCatalog loads names in slot order, so names[i] ends up as the
// clip for the state whose ClipIndex is i.
func LoadClipCatalog(loader ClipLoader, names [CatalogSize]string) (ClipCatalog, error) {
	var c ClipCatalog
	for i, name := range names {
		h, err := loader.Load(name)
		if err != nil {
			return ClipCatalog{}, fmt.Errorf("control: clip slot %d: %w", i, err)
		}
		c.clips[i] = h
		c.names[i] = name
	}
	return c, nil
}

// For returns the clip shown in state s.
func (c ClipCatalog) For(s StateCode) anim.Handle {
	return c.clips[s.ClipIndex()]
}

// Name returns the logical clip name for state s.
func (c ClipCatalog) Name(s StateCode) string {
	return c.names[s.ClipIndex()]
}

func (c ClipCatalog) Names() [CatalogSize]string {
	return c.names
}
