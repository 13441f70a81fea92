package sound

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/arena-games/arena/round"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}
	return out
}

func meanAbs(samples [][2]float64) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += math.Abs(s[0])
	}
	return sum / float64(len(samples))
}

func TestToneLengthAndEnvelope(t *testing.T) {
	s, err := Tone(SampleRate, Shoot, 1)
	if err != nil {
		t.Fatalf("Tone: %v", err)
	}
	samples := drain(t, s)

	if want := SampleRate.N(Shoot.Duration); len(samples) != want {
		t.Fatalf("samples = %d, want %d", len(samples), want)
	}
	for i, v := range samples {
		if math.Abs(v[0]) > startGain+1e-9 || math.Abs(v[1]) > startGain+1e-9 {
			t.Fatalf("sample %d = %v exceeds the starting gain", i, v)
		}
	}

	tenth := len(samples) / 10
	head, tail := meanAbs(samples[:tenth]), meanAbs(samples[len(samples)-tenth:])
	if head <= tail*10 {
		t.Fatalf("envelope did not decay: head %f, tail %f", head, tail)
	}
	if last := math.Abs(samples[len(samples)-1][0]); last > 2*endGain {
		t.Fatalf("last sample %f, want near %f", last, endGain)
	}
}

func TestToneVolume(t *testing.T) {
	loud, err := Tone(SampleRate, Kill, 1)
	if err != nil {
		t.Fatalf("Tone: %v", err)
	}
	quiet, err := Tone(SampleRate, Kill, 0.25)
	if err != nil {
		t.Fatalf("Tone: %v", err)
	}
	mute, err := Tone(SampleRate, Kill, 0)
	if err != nil {
		t.Fatalf("Tone: %v", err)
	}

	l, q, m := meanAbs(drain(t, loud)), meanAbs(drain(t, quiet)), meanAbs(drain(t, mute))
	if math.Abs(q-l*0.25) > 1e-6 {
		t.Fatalf("quarter volume mean %f, want %f", q, l*0.25)
	}
	if m != 0 {
		t.Fatalf("muted mean %f, want 0", m)
	}
}

func TestToneRejectsFrequencyAboveNyquist(t *testing.T) {
	if _, err := Tone(SampleRate, Cue{Freq: float64(SampleRate), Duration: time.Millisecond}, 1); err == nil {
		t.Fatal("expected an error for a tone at the sample rate")
	}
}

func TestRenderEncodesStereoInt16(t *testing.T) {
	s, err := Tone(SampleRate, Hit, 1)
	if err != nil {
		t.Fatalf("Tone: %v", err)
	}
	pcm, err := Render(s)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := SampleRate.N(Hit.Duration) * 4; len(pcm) != want {
		t.Fatalf("pcm bytes = %d, want %d", len(pcm), want)
	}
	limit := int16(math.Round(startGain*32767)) + 1
	for i := 0; i < len(pcm); i += 4 {
		left := int16(binary.LittleEndian.Uint16(pcm[i:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		if left != right {
			t.Fatalf("frame %d: left %d != right %d", i/4, left, right)
		}
		if left > limit || left < -limit {
			t.Fatalf("frame %d: %d beyond gain limit %d", i/4, left, limit)
		}
	}
}

func TestToInt16Clips(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{3, 32767},
		{-3, -32767},
		{0.5, 16383},
	}
	for _, tt := range tests {
		if got := toInt16(tt.in); got != tt.want {
			t.Errorf("toInt16(%f) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBankCachesRenderedCues(t *testing.T) {
	b := NewBank(SampleRate, 1)
	first, err := b.PCM(Shoot)
	if err != nil {
		t.Fatalf("PCM: %v", err)
	}
	second, err := b.PCM(Shoot)
	if err != nil {
		t.Fatalf("PCM: %v", err)
	}
	if &first[0] != &second[0] {
		t.Fatal("second lookup rendered the cue again")
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		kind round.EventKind
		want Cue
		ok   bool
	}{
		{round.EventShot, Shoot, true},
		{round.EventHit, Hit, true},
		{round.EventKill, Kill, true},
		{round.EventGameOver, Cue{}, false},
		{round.EventWaveStarted, Cue{}, false},
	}
	for _, tt := range tests {
		got, ok := CueFor(tt.kind)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CueFor(%v) = %v, %v; want %v, %v", tt.kind, got, ok, tt.want, tt.ok)
		}
	}
}
