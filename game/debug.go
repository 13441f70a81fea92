package game

// DebugState holds debug toggles that persist across restarts
type DebugState struct {
	ShowGrid bool // F1
	ShowFPS  bool // F2
}

var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
