// Package texture bakes raster primitives into named, reusable textures.
package texture

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/vovakirdan/starfall/internal/core"
)

// ErrUnknownTexture is returned when a texture key was never baked.
var ErrUnknownTexture = errors.New("texture: unknown texture")

// Texture is a baked image plus the colour it reads as from afar.
type Texture struct {
	Key     string
	Image   *image.RGBA
	Average core.Color
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.Image.Bounds().Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.Image.Bounds().Dy() }

// Store holds textures by key. It is not safe for concurrent use; scenes own
// one store each and touch it only from the tick loop.
type Store struct {
	textures map[string]*Texture
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{textures: make(map[string]*Texture)}
}

// Add stores img under key, replacing any previous texture with that key.
func (s *Store) Add(key string, img *image.RGBA) (*Texture, error) {
	if key == "" {
		return nil, errors.New("texture: empty key")
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("texture: %q: empty image", key)
	}
	t := &Texture{Key: key, Image: img, Average: Average(img)}
	s.textures[key] = t
	return t, nil
}

// Get returns the texture for key.
func (s *Store) Get(key string) (*Texture, error) {
	t, ok := s.textures[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTexture, key)
	}
	return t, nil
}

// Has reports whether key has been baked.
func (s *Store) Has(key string) bool {
	_, ok := s.textures[key]
	return ok
}

// Keys returns all texture keys, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.textures))
	for k := range s.textures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear drops every texture.
func (s *Store) Clear() {
	s.textures = make(map[string]*Texture)
}
