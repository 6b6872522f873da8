package scene

import "testing"

var testAnims = map[string]Animation{
	AnimLeft:  {Frames: []int{0, 1, 2}, FPS: 4, Loop: true},
	AnimIdle:  {Frames: []int{4}, FPS: 20},
	AnimRight: {Frames: []int{5, 6}, FPS: 4},
}

func TestAnimatorLoops(t *testing.T) {
	a := NewAnimator(testAnims)
	if a.Current() != AnimIdle || a.Frame() != 4 {
		t.Fatalf("start = %s/%d", a.Current(), a.Frame())
	}

	a.Play(AnimLeft)
	steps := []struct {
		dt    float64
		frame int
	}{
		{0.125, 0},
		{0.125, 1},
		{0.25, 2},
		{0.25, 0},
		{0.5, 2},
	}
	for i, s := range steps {
		a.Update(s.dt)
		if got := a.Frame(); got != s.frame {
			t.Errorf("step %d: frame = %d, expected %d", i, got, s.frame)
		}
	}
}

func TestAnimatorHoldsLastFrame(t *testing.T) {
	a := NewAnimator(testAnims)
	a.Play(AnimRight)
	a.Update(2)
	if a.Frame() != 6 {
		t.Errorf("Frame() = %d, expected the last frame 6", a.Frame())
	}
}

func TestAnimatorPlaySameKeepsFrame(t *testing.T) {
	a := NewAnimator(testAnims)
	a.Play(AnimLeft)
	a.Update(0.25)
	a.Play(AnimLeft)
	if a.Frame() != 1 {
		t.Errorf("replaying restarted the animation: frame %d", a.Frame())
	}
	a.Play("jump")
	if a.Current() != AnimLeft {
		t.Errorf("unknown animation replaced %q", AnimLeft)
	}
	a.Play(AnimRight)
	if a.Frame() != 5 {
		t.Errorf("switching did not restart: frame %d", a.Frame())
	}
}
