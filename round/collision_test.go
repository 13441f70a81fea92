package round

import (
	"math"
	"testing"
	"testing/quick"
)

func circle(x, y, r float64) *Entity {
	return &Entity{X: x, Y: y, Radius: r}
}

func TestCollidesIsSymmetricAndMatchesDistance(t *testing.T) {
	prop := func(ax, ay, ar, bx, by, br float64) bool {
		// Keep coordinates in a sane pixel range
		a := circle(math.Mod(ax, 4000), math.Mod(ay, 4000), math.Abs(math.Mod(ar, 200)))
		b := circle(math.Mod(bx, 4000), math.Mod(by, 4000), math.Abs(math.Mod(br, 200)))
		want := math.Hypot(a.X-b.X, a.Y-b.Y) < a.Radius+b.Radius
		return Collides(a, b) == Collides(b, a) && Collides(a, b) == want
	}
	if err := quick.Check(prop, &quick.Config{MaxCount: 2000}); err != nil {
		t.Fatal(err)
	}
}

func TestCollidesBoundaries(t *testing.T) {
	tests := []struct {
		name string
		a, b *Entity
		want bool
	}{
		{"overlapping", circle(0, 0, 10), circle(15, 0, 10), true},
		{"touching does not collide", circle(0, 0, 10), circle(20, 0, 10), false},
		{"apart", circle(0, 0, 10), circle(30, 40, 10), false},
		{"same centre", circle(5, 5, 1), circle(5, 5, 1), true},
		{"zero radius points at same spot", circle(5, 5, 0), circle(5, 5, 0), false},
		{"diagonal just inside", circle(0, 0, 25), circle(30, 39.9, 25), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(tt.a, tt.b); got != tt.want {
				t.Errorf("Collides = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOneBulletDestroysOnlyOneOfTwoOverlappingEnemies(t *testing.T) {
	r := New(Waves{}, Waves{}.DefaultArena(), 1)
	r.enemies = append(r.enemies,
		&Entity{Kind: KindEnemy, X: 500, Y: 500, Radius: WaveEnemyRadius},
		&Entity{Kind: KindEnemy, X: 510, Y: 500, Radius: WaveEnemyRadius},
	)
	r.bullets = append(r.bullets, &Entity{Kind: KindBullet, X: 505, Y: 500, Radius: BulletRadius})

	r.Tick(Input{})

	if got := len(r.enemies); got != 1 {
		t.Fatalf("enemies after tick = %d, want 1", got)
	}
	if got := len(r.bullets); got != 0 {
		t.Fatalf("bullets after tick = %d, want 0", got)
	}
	if r.Score() != KillScore {
		t.Fatalf("score = %d, want %d", r.Score(), KillScore)
	}
	if r.Wave() != 0 {
		t.Fatalf("wave = %d, want 0 while an enemy is left", r.Wave())
	}
}

func TestEachBulletKillsItsOwnEnemyInOneFrame(t *testing.T) {
	r := New(Pursuit{}, Pursuit{}.DefaultArena(), 1)
	// A row of touching enemies, each with a bullet on its centre
	for i := 0; i < 6; i++ {
		x := 100 + float64(i)*20
		r.enemies = append(r.enemies, &Entity{Kind: KindEnemy, X: x, Y: 100, Radius: PursuitEnemyRadius})
		r.bullets = append(r.bullets, &Entity{Kind: KindBullet, X: x, Y: 100, Radius: BulletRadius})
	}

	r.resolveCollisions()

	if len(r.enemies) != 0 || len(r.bullets) != 0 {
		t.Fatalf("left %d enemies and %d bullets, want none", len(r.enemies), len(r.bullets))
	}
	if r.Score() != 6*KillScore {
		t.Fatalf("score = %d, want %d", r.Score(), 6*KillScore)
	}
}

func TestContactDamagesEveryTouchingPlayer(t *testing.T) {
	r := New(Waves{}, Waves{}.DefaultArena(), 1)
	p1, p2 := r.players[0], r.players[1]
	p2.X, p2.Y = p1.X+10, p1.Y
	r.enemies = append(r.enemies, &Entity{Kind: KindEnemy, X: p1.X + 5, Y: p1.Y, Radius: WaveEnemyRadius})

	r.resolveCollisions()

	if p1.Health != InitialHealth-WaveContactDamage || p2.Health != InitialHealth-WaveContactDamage {
		t.Fatalf("health = %d/%d, want %d each", p1.Health, p2.Health, InitialHealth-WaveContactDamage)
	}
	hits := 0
	for _, ev := range r.DrainEvents() {
		if ev.Kind == EventHit {
			hits++
		}
	}
	if hits != 2 {
		t.Fatalf("hit events = %d, want 2", hits)
	}
}

func TestCompactKeepsOrder(t *testing.T) {
	a, b, c := circle(1, 0, 1), circle(2, 0, 1), circle(3, 0, 1)
	b.MarkDead()
	got := compact([]*Entity{a, b, c})
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("compact = %v, want [a c]", got)
	}
}
