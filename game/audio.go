package game

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/arena-games/arena/sound"
)

// AudioSink plays cues through ebiten's audio context. Rendered cues are
// cached, every play gets its own player so cues overlap.
type AudioSink struct {
	context *audio.Context
	bank    *sound.Bank
	logger  *log.Logger
}

// NewAudioSink creates the process-wide audio context; call it once
func NewAudioSink(volume float64, logger *log.Logger) *AudioSink {
	return &AudioSink{
		context: audio.NewContext(int(sound.SampleRate)),
		bank:    sound.NewBank(sound.SampleRate, volume),
		logger:  logger,
	}
}

// Play starts the cue and returns immediately
func (s *AudioSink) Play(c sound.Cue) {
	pcm, err := s.bank.PCM(c)
	if err != nil {
		s.logger.Warn("cue dropped", "freq", c.Freq, "err", err)
		return
	}
	s.context.NewPlayerFromBytes(pcm).Play()
}
