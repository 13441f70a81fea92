package round

// Snapshot is a read-only copy of a round for renderers. Mutating it has no
// effect on the round it came from.
type Snapshot struct {
	Mode    string
	Arena   Arena
	Players []Entity
	Bullets []Entity
	Enemies []Entity
	Wave    int
	Score   int
	State   State
	Frame   uint64
}

// Snapshot copies the current state
func (r *Round) Snapshot() Snapshot {
	return Snapshot{
		Mode:    r.rules.Name(),
		Arena:   r.arena,
		Players: copyEntities(r.players),
		Bullets: copyEntities(r.bullets),
		Enemies: copyEntities(r.enemies),
		Wave:    r.wave,
		Score:   r.score,
		State:   r.state,
		Frame:   r.frame,
	}
}

func copyEntities(src []*Entity) []Entity {
	out := make([]Entity, len(src))
	for i, e := range src {
		out[i] = *e
	}
	return out
}
