package round

// resolveCollisions runs the collision pass for one frame.
//
// Entities are only marked during the pass and dropped afterwards, so a
// removal never shifts the slices being iterated. A bullet or enemy that has
// been marked takes no further part in the pass: one bullet destroys at most
// one enemy and one enemy absorbs at most one bullet.
func (r *Round) resolveCollisions() {
	damage := r.rules.ContactDamage()

	// Enemies against players
	for _, enemy := range r.enemies {
		for _, player := range r.players {
			if Collides(player, enemy) {
				player.Health -= damage
				r.emit(Event{Kind: EventHit, Slot: player.Slot})
			}
		}
	}

	// Enemies against bullets
	for _, enemy := range r.enemies {
		for _, bullet := range r.bullets {
			if bullet.Dead() {
				continue
			}
			if Collides(bullet, enemy) {
				enemy.MarkDead()
				bullet.MarkDead()
				r.score += KillScore
				r.emit(Event{Kind: EventKill})
				break
			}
		}
	}

	r.enemies = compact(r.enemies)
	r.bullets = compact(r.bullets)

	for _, player := range r.players {
		if player.Health <= 0 {
			r.state = GameOver
			r.emit(Event{Kind: EventGameOver, Slot: player.Slot})
			return
		}
	}
}

// compact drops marked entities in place, keeping order
func compact(entities []*Entity) []*Entity {
	kept := entities[:0]
	for _, e := range entities {
		if !e.Dead() {
			kept = append(kept, e)
		}
	}
	clear(entities[len(kept):])
	return kept
}
