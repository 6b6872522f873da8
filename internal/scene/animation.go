package scene

// Animation names shared by both scenes.
const (
	AnimLeft  = "left"
	AnimIdle  = "turn"
	AnimRight = "right"
)

// Animation is a frame sequence played at a fixed rate.
type Animation struct {
	Frames []int
	FPS    float64
	Loop   bool
}

// PlayerAnimations is the dude sheet: four frames each way around a still frame.
var PlayerAnimations = map[string]Animation{
	AnimLeft:  {Frames: []int{0, 1, 2, 3}, FPS: 10, Loop: true},
	AnimIdle:  {Frames: []int{4}, FPS: 20},
	AnimRight: {Frames: []int{5, 6, 7, 8}, FPS: 10, Loop: true},
}

// Animator tracks the current animation of one entity.
type Animator struct {
	anims   map[string]Animation
	current string
	index   int
	elapsed float64
}

// NewAnimator starts on the idle animation.
func NewAnimator(anims map[string]Animation) *Animator {
	return &Animator{anims: anims, current: AnimIdle}
}

// Play switches to key. Playing the current animation again keeps its frame.
func (a *Animator) Play(key string) {
	if key == a.current {
		return
	}
	if _, ok := a.anims[key]; !ok {
		return
	}
	a.current = key
	a.index = 0
	a.elapsed = 0
}

// Current returns the playing animation name.
func (a *Animator) Current() string { return a.current }

// Frame returns the sheet frame currently shown.
func (a *Animator) Frame() int {
	anim, ok := a.anims[a.current]
	if !ok || len(anim.Frames) == 0 {
		return 0
	}
	return anim.Frames[a.index]
}

// Update advances the animation by dt seconds.
func (a *Animator) Update(dt float64) {
	anim, ok := a.anims[a.current]
	if !ok || anim.FPS <= 0 || len(anim.Frames) < 2 {
		return
	}
	a.elapsed += dt
	step := 1 / anim.FPS
	for a.elapsed >= step {
		a.elapsed -= step
		switch {
		case a.index+1 < len(anim.Frames):
			a.index++
		case anim.Loop:
			a.index = 0
		}
	}
}
