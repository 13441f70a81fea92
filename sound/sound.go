// Package sound synthesizes the short square-wave cues the arena plays on
// shots, hits and kills
package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/arena-games/arena/round"
)

// SampleRate is the rate every cue is rendered at
const SampleRate = beep.SampleRate(44100)

// Envelope: the tone starts at startGain and decays exponentially to endGain
const (
	startGain = 0.2
	endGain   = 0.001
)

// Cue is one tone: a frequency held for a duration
type Cue struct {
	Freq     float64
	Duration time.Duration
}

// Cues played by the arena
var (
	Shoot = Cue{Freq: 400, Duration: 100 * time.Millisecond}
	Hit   = Cue{Freq: 120, Duration: 100 * time.Millisecond}
	Kill  = Cue{Freq: 800, Duration: 100 * time.Millisecond}
)

// CueFor maps a round event to the cue it triggers
func CueFor(kind round.EventKind) (Cue, bool) {
	switch kind {
	case round.EventShot:
		return Shoot, true
	case round.EventHit:
		return Hit, true
	case round.EventKill:
		return Kill, true
	default:
		return Cue{}, false
	}
}

// Sink plays cues. Play must return quickly; it is called from the game loop.
type Sink interface {
	Play(c Cue)
}

// Silent is a Sink that plays nothing
type Silent struct{}

func (Silent) Play(Cue) {}

// Tone returns a finite stream for the cue: a square wave whose gain falls
// exponentially from 0.2 to 0.001 over the cue duration, scaled by volume
// (1 leaves it unchanged, 0 or less is silent)
func Tone(rate beep.SampleRate, c Cue, volume float64) (beep.Streamer, error) {
	square, err := generators.SquareTone(rate, c.Freq)
	if err != nil {
		return nil, fmt.Errorf("square tone at %.0f Hz: %w", c.Freq, err)
	}
	n := rate.N(c.Duration)
	shaped := &decay{
		streamer: beep.Take(n, square),
		total:    n,
	}
	return withVolume(shaped, volume), nil
}

// decay applies the exponential gain ramp
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := startGain * math.Pow(endGain/startGain, float64(d.position)/float64(d.total))
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume wraps a stream in a volume effect.
// math.Log2(0) is -Inf, so zero volume is made silent instead.
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume == 1 {
		return s
	}
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

// Render drains a finite stream into interleaved stereo signed 16-bit
// little-endian PCM
func Render(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][1])))
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("render stream: %w", err)
	}
	return out, nil
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// Bank renders each cue to PCM once and keeps it for replay
type Bank struct {
	rate   beep.SampleRate
	volume float64
	pcm    map[Cue][]byte
}

// NewBank creates an empty bank for the given rate and master volume
func NewBank(rate beep.SampleRate, volume float64) *Bank {
	return &Bank{
		rate:   rate,
		volume: volume,
		pcm:    make(map[Cue][]byte),
	}
}

// PCM returns the rendered cue, rendering it on first use
func (b *Bank) PCM(c Cue) ([]byte, error) {
	if data, ok := b.pcm[c]; ok {
		return data, nil
	}
	s, err := Tone(b.rate, c, b.volume)
	if err != nil {
		return nil, err
	}
	data, err := Render(s)
	if err != nil {
		return nil, err
	}
	b.pcm[c] = data
	return data, nil
}
