// Package loop advances a round by one frame on behalf of a frontend and
// turns the frame's events into sound cues and log lines.
package loop

import (
	"github.com/charmbracelet/log"

	"github.com/arena-games/arena/round"
	"github.com/arena-games/arena/sound"
)

// Step ticks the round with the sampled input, then plays and logs whatever
// happened. The drained events are returned.
func Step(r *round.Round, in round.Input, sink sound.Sink, logger *log.Logger) []round.Event {
	r.Tick(in)
	events := r.DrainEvents()
	for _, ev := range events {
		if c, ok := sound.CueFor(ev.Kind); ok {
			sink.Play(c)
		}
		logEvent(logger, r.Mode(), ev)
	}
	return events
}

func logEvent(logger *log.Logger, mode string, ev round.Event) {
	switch ev.Kind {
	case round.EventWaveStarted:
		logger.Debug("wave started", "mode", mode, "wave", ev.Wave)
	case round.EventGameOver:
		logger.Info("game over", "mode", mode, "score", ev.Score, "wave", ev.Wave, "player", ev.Slot+1)
	case round.EventRestarted:
		logger.Info("round restarted", "mode", mode)
	}
}
