package scene

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/texture"
)

// Spawner creates the player, collectible rows, obstacles and hazards.
type Spawner struct {
	store    *texture.Store
	entities *Entities
	rng      Rand
	logger   *log.Logger
}

// PlayerSpec describes the controllable character.
type PlayerSpec struct {
	X, Y          float64
	Width, Height float64 // Zero uses the texture size
	Texture       string
	Bounce        float64
	MaxVelocityX  float64 // Zero is unlimited
	Circle        bool
}

// Player creates the player entity with world-bound collision.
func (s *Spawner) Player(group *physics.Group, spec PlayerSpec) (*Entity, error) {
	tex, err := s.store.Get(spec.Texture)
	if err != nil {
		return nil, fmt.Errorf("scene: player: %w", err)
	}
	w, h := spec.Width, spec.Height
	if w == 0 || h == 0 {
		w, h = float64(tex.Width()), float64(tex.Height())
	}
	body := group.Create(spec.X, spec.Y, w, h)
	body.SetBounce(spec.Bounce)
	body.CollideWorldBounds = true
	body.Circle = spec.Circle
	body.MaxVelocity.X = spec.MaxVelocityX

	e := s.entities.Add(KindPlayer, body, tex)
	e.Anim = NewAnimator(PlayerAnimations)
	return e, nil
}

// RowSpec lays count entities along a horizontal line.
type RowSpec struct {
	Kind          Kind
	Count         int
	StartX, StepX float64
	Y             float64
	Width, Height float64 // Zero uses the texture size
	Texture       string
	Bounce        config.Range // Per-entity vertical bounce
	BounceXY      bool         // Apply the drawn bounce to both axes
	// Obstacles only: per-entity extra gravity and horizontal velocity,
	// both drawn as integers.
	Gravity   *config.Range
	VelocityX *config.Range
	Bounded   bool
}

// Row creates a group of entities with independently randomized parameters.
func (s *Spawner) Row(group *physics.Group, spec RowSpec) ([]*Entity, error) {
	tex, err := s.store.Get(spec.Texture)
	if err != nil {
		return nil, fmt.Errorf("scene: row: %w", err)
	}
	w, h := spec.Width, spec.Height
	if w == 0 || h == 0 {
		w, h = float64(tex.Width()), float64(tex.Height())
	}

	out := make([]*Entity, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		body := group.Create(spec.StartX+float64(i)*spec.StepX, spec.Y, w, h)
		if b := FloatIn(s.rng, spec.Bounce); spec.BounceXY {
			body.SetBounce(b)
		} else {
			body.Bounce.Y = b
		}
		body.CollideWorldBounds = spec.Bounded
		if spec.Gravity != nil {
			body.Gravity.Y = IntIn(s.rng, *spec.Gravity)
		}
		if spec.VelocityX != nil {
			body.Velocity.X = IntIn(s.rng, *spec.VelocityX)
		}
		out = append(out, s.entities.Add(spec.Kind, body, tex))
	}
	return out, nil
}

// HazardX picks a spawn x from the half of the world opposite playerX.
func HazardX(r Rand, playerX, worldW float64) float64 {
	if playerX < worldW/2 {
		return float64(Between(r, int(math.Ceil(worldW/2)), int(worldW)))
	}
	return float64(Between(r, 0, int(worldW/2)))
}

// Hazard spawns one hazard away from the player.
func (s *Spawner) Hazard(group *physics.Group, key string, playerX, worldW float64, cfg config.HazardConfig) (*Entity, error) {
	tex, err := s.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("scene: hazard: %w", err)
	}
	size := cfg.Size
	if size == 0 {
		size = float64(tex.Width())
	}
	x := HazardX(s.rng, playerX, worldW)
	body := group.Create(x, cfg.Y, size, size)
	body.SetBounce(cfg.Bounce)
	body.CollideWorldBounds = true
	body.SetVelocity(IntIn(s.rng, cfg.VelocityX), cfg.VelocityY)

	s.logger.Debug("hazard spawned", "x", x, "vx", body.Velocity.X)
	return s.entities.Add(KindHazard, body, tex), nil
}
