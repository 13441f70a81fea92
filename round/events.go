package round

// EventKind identifies something that happened during a frame
type EventKind int

const (
	EventShot EventKind = iota
	EventHit
	EventKill
	EventWaveStarted
	EventGameOver
	EventRestarted
)

func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventHit:
		return "hit"
	case EventKill:
		return "kill"
	case EventWaveStarted:
		return "wave started"
	case EventGameOver:
		return "game over"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Event is raised by the simulation for frontends to play sounds and log.
// Wave and Score hold the round counters at the moment it was raised.
type Event struct {
	Kind  EventKind
	Slot  int // player involved, if any
	Wave  int
	Score int
}
