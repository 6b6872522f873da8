package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/starfall/internal/config"
)

// SampleRate is the output sample rate of every synthesized cue.
const SampleRate = beep.SampleRate(44100)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
	waveNoise
)

func parseWave(name string) (wave, error) {
	switch name {
	case "", "sine":
		return waveSine, nil
	case "square":
		return waveSquare, nil
	case "saw":
		return waveSaw, nil
	case "noise":
		return waveNoise, nil
	default:
		return 0, fmt.Errorf("audio: unknown wave %q", name)
	}
}

// tone is a fixed-length oscillator.
type tone struct {
	freq  float64
	phase float64
	left  int
	shape wave
	rate  beep.SampleRate
	noise uint32
}

func newTone(freq float64, d time.Duration, shape wave, sr beep.SampleRate) *tone {
	return &tone{freq: freq, left: sr.N(d), shape: shape, rate: sr, noise: 0x2545f491}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.left <= 0 {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.left <= 0 {
			break
		}
		var v float64
		switch t.shape {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2*t.phase - 1
		case waveNoise:
			// xorshift keeps noise cues reproducible
			t.noise ^= t.noise << 13
			t.noise ^= t.noise >> 17
			t.noise ^= t.noise << 5
			v = float64(t.noise)/math.MaxUint32*2 - 1
		}
		samples[i][0], samples[i][1] = v, v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.left--
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

// shaper applies a linear attack and release to a stream of known length.
type shaper struct {
	src     beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func (s *shaper) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if s.attack > 0 && s.pos < s.attack {
			gain = float64(s.pos) / float64(s.attack)
		}
		if rem := s.total - s.pos; s.release > 0 && rem < s.release {
			gain = math.Min(gain, float64(rem)/float64(s.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		s.pos++
	}
	return n, ok
}

func (s *shaper) Err() error { return s.src.Err() }

// gain wraps s in a linear volume control; zero or less is silent.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Synthesize renders a cue into a seekable buffer at SampleRate.
func Synthesize(cue config.CueConfig) (*beep.Buffer, error) {
	if len(cue.Notes) == 0 {
		return nil, fmt.Errorf("audio: cue has no notes")
	}
	if cue.NoteMS <= 0 {
		return nil, fmt.Errorf("audio: note_ms must be positive, got %d", cue.NoteMS)
	}
	shape, err := parseWave(cue.Wave)
	if err != nil {
		return nil, err
	}

	noteDur := time.Duration(cue.NoteMS) * time.Millisecond
	notes := make([]beep.Streamer, 0, len(cue.Notes))
	for _, freq := range cue.Notes {
		notes = append(notes, &shaper{
			src:     newTone(freq, noteDur, shape, SampleRate),
			total:   SampleRate.N(noteDur),
			attack:  SampleRate.N(time.Duration(cue.AttackMS) * time.Millisecond),
			release: SampleRate.N(time.Duration(cue.ReleaseMS) * time.Millisecond),
		})
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(gain(beep.Seq(notes...), cue.Volume))
	return buf, nil
}
