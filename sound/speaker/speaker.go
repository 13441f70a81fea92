// Package speaker plays arena cues through the system audio device
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/arena-games/arena/sound"
)

// Sink plays cues on the beep speaker. Each cue is synthesized once into a
// buffer and replayed from there.
type Sink struct {
	mu      sync.Mutex
	volume  float64
	buffers map[sound.Cue]*beep.Buffer
	logger  *log.Logger
}

// New initializes the speaker and returns a sink for it
func New(volume float64, logger *log.Logger) (*Sink, error) {
	if err := speaker.Init(sound.SampleRate, sound.SampleRate.N(time.Millisecond*100)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Sink{
		volume:  volume,
		buffers: make(map[sound.Cue]*beep.Buffer),
		logger:  logger,
	}, nil
}

// Play starts the cue and returns immediately; overlapping cues are mixed
func (s *Sink) Play(c sound.Cue) {
	buf, err := s.buffer(c)
	if err != nil {
		s.logger.Warn("cue dropped", "freq", c.Freq, "err", err)
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

func (s *Sink) buffer(c sound.Cue) (*beep.Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if buf, ok := s.buffers[c]; ok {
		return buf, nil
	}
	tone, err := sound.Tone(sound.SampleRate, c, s.volume)
	if err != nil {
		return nil, err
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sound.SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(tone)
	s.buffers[c] = buf
	return buf, nil
}

// Close stops everything still playing
func (s *Sink) Close() {
	speaker.Clear()
	speaker.Close()
}
