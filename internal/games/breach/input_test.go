package breach

import (
	"testing"
	"time"

	"github.com/vovakirdan/circuit-breach/internal/core"
)

func key(r rune) core.KeyEvent { return core.KeyEvent{Key: r} }
func shifted(r rune) core.KeyEvent { return core.KeyEvent{Key: r, Shift: true} }
func space() core.KeyEvent { return core.KeyEvent{Key: core.KeySpace} }
func shiftSpace() core.KeyEvent { return core.KeyEvent{Key: core.KeySpace, Shift: true} }

func TestHandleKeyTypeRules(t *testing.T) {
	tests := []struct {
		name  string
		typ   BlockType
		lane  int
		ev    core.KeyEvent
		want  Outcome
		alive bool
	}{
		{"standard own key", Standard, 1, key('Z'), OutcomeHit, false},
		{"standard with shift", Standard, 1, shifted('Z'), OutcomeError, true},
		{"standard wrong column", Standard, 1, key('X'), OutcomeError, true},
		{"standard space", Standard, 1, space(), OutcomeError, true},
		{"encrypted with shift", Encrypted, 3, shifted('C'), OutcomeHit, false},
		{"encrypted without shift", Encrypted, 3, key('C'), OutcomeError, true},
		{"malware column key", Malware, 2, key('X'), OutcomeError, true},
		{"malware space", Malware, 2, space(), OutcomeError, true},
		{"virus space", Virus, 4, space(), OutcomeHit, false},
		{"virus shift space", Virus, 4, shiftSpace(), OutcomeHit, false},
		{"virus column key", Virus, 4, key('V'), OutcomeError, true},
		{"non action key", Standard, 1, key('Q'), OutcomeIgnored, true},
		{"inactive lane key", Standard, 1, key('N'), OutcomeIgnored, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			b := placeInZone(s, tt.typ, tt.lane)

			if got := s.HandleKey(tt.ev); got != tt.want {
				t.Fatalf("HandleKey = %v, want %v", got, tt.want)
			}
			alive := len(s.blocks) == 1
			if alive != tt.alive {
				t.Errorf("block alive = %v, want %v", alive, tt.alive)
			}
			if !tt.alive && b.State != Dead {
				t.Errorf("state = %v, want Dead", b.State)
			}
			switch tt.want {
			case OutcomeHit:
				if s.Hits() != 1 || s.Misses() != 0 {
					t.Errorf("hits=%d misses=%d", s.Hits(), s.Misses())
				}
			case OutcomeError:
				if s.Misses() != 1 {
					t.Errorf("misses = %d, want 1", s.Misses())
				}
			case OutcomeIgnored:
				if s.Misses() != 0 || s.Hits() != 0 {
					t.Errorf("ignored key changed counters")
				}
			}
		})
	}
}

func TestMalwarePressGlitchesBlock(t *testing.T) {
	s := newTestSession(t)
	b := placeInZone(s, Malware, 2)
	s.HandleKey(key('X'))
	if b.Glitch != s.cfg.Timing.MalwareGlitch {
		t.Errorf("glitch = %v, want %v", b.Glitch, s.cfg.Timing.MalwareGlitch)
	}
	if b.State != Falling {
		t.Errorf("malware must keep falling, state=%v", b.State)
	}
}

func TestFrontmostBlockResolvesFirst(t *testing.T) {
	s := newTestSession(t)
	center := (s.spawner.CaptureTop() + s.spawner.CaptureBottom()) / 2
	upper := place(s, Standard, 1, center-10)
	lower := place(s, Standard, 2, center+10)

	// Z answers the upper block, but the lower one is judged first.
	if got := s.HandleKey(key('Z')); got != OutcomeError {
		t.Fatalf("HandleKey = %v, want error on the frontmost block", got)
	}
	if got := s.HandleKey(key('X')); got != OutcomeHit {
		t.Fatalf("HandleKey = %v, want hit", got)
	}
	if lower.State != Dead || upper.State != Falling {
		t.Errorf("lower=%v upper=%v", lower.State, upper.State)
	}
}

func TestLockedColumnIgnored(t *testing.T) {
	s := newTestSession(t)
	placeInZone(s, Standard, 2)
	s.locks.Lock(2)

	if got := s.HandleKey(key('X')); got != OutcomeIgnored {
		t.Fatalf("HandleKey = %v, want ignored", got)
	}
	if s.Misses() != 0 || s.Hits() != 0 || len(s.blocks) != 1 {
		t.Errorf("locked key had an effect")
	}

	// Space still works on the locked lane's virus.
	placeInZone(s, Virus, 2)
	s.blocks = s.blocks[1:]
	if got := s.HandleKey(space()); got != OutcomeHit {
		t.Errorf("space on locked lane = %v, want hit", got)
	}
}

func TestEmptyZoneColumnPressCooldown(t *testing.T) {
	s := newTestSession(t)

	if got := s.HandleKey(key('Z')); got != OutcomeError {
		t.Fatalf("first press = %v, want error", got)
	}
	if !s.LaneCooldown(1) {
		t.Fatal("lane 1 should be cooling down")
	}
	if got := s.HandleKey(key('Z')); got != OutcomeIgnored {
		t.Errorf("second press = %v, want ignored", got)
	}
	if s.Misses() != 1 {
		t.Errorf("misses = %d, want 1", s.Misses())
	}

	// Other lanes have their own cooldown.
	if got := s.HandleKey(key('X')); got != OutcomeError {
		t.Errorf("other lane press = %v, want error", got)
	}
}

func TestEmptyZoneSpaceAlwaysErrors(t *testing.T) {
	s := newTestSession(t)
	for i := range 2 {
		if got := s.HandleKey(space()); got != OutcomeError {
			t.Fatalf("press %d = %v, want error", i+1, got)
		}
	}
	if s.Misses() != 2 {
		t.Errorf("misses = %d, want 2", s.Misses())
	}
}

func TestPrepaidBlockExitsWithoutMiss(t *testing.T) {
	s := newTestSession(t)
	b := placeAbove(s, Standard, 1, 20)

	s.HandleKey(key('Z'))
	if !b.Prepaid {
		t.Fatal("approaching block should be prepaid")
	}

	runFor(s, 2*time.Second)
	if len(s.blocks) != 0 {
		t.Fatalf("block still in play")
	}
	if s.Misses() != 1 {
		t.Errorf("misses = %d, want 1 (the early press only)", s.Misses())
	}
	if s.LaneCooldown(1) {
		t.Error("cooldown should be released once the prepaid block leaves")
	}
}

func TestPrepaidVirusStillLocks(t *testing.T) {
	s := newTestSession(t)
	placeAbove(s, Virus, 3, 20)
	s.HandleKey(key('C'))

	runFor(s, 2*time.Second)
	if s.Misses() != 2 {
		t.Errorf("misses = %d, want 2", s.Misses())
	}
	if s.LaneLock(3) == 0 {
		t.Error("escaped virus should lock its lane")
	}
}

func TestPrepaidTwoBlocksOneLane(t *testing.T) {
	s := newTestSession(t)
	near := placeAbove(s, Standard, 1, 20)
	far := placeAbove(s, Standard, 1, 60)

	s.HandleKey(key('Z'))
	if !near.Prepaid || far.Prepaid {
		t.Fatalf("near.Prepaid=%v far.Prepaid=%v, want only the nearest", near.Prepaid, far.Prepaid)
	}

	runFor(s, 3*time.Second)
	if len(s.blocks) != 0 {
		t.Fatalf("blocks still in play: %d", len(s.blocks))
	}
	// One early press plus the unanswered second block.
	if s.Misses() != 2 {
		t.Errorf("misses = %d, want 2", s.Misses())
	}
	if s.LaneCooldown(1) {
		t.Error("cooldown should be released")
	}
}

func TestPrepaidBlockHitReleasesCooldown(t *testing.T) {
	s := newTestSession(t)
	near := placeAbove(s, Standard, 1, 5)
	far := placeAbove(s, Standard, 1, 200)

	s.HandleKey(key('Z'))
	for near.State == Falling && !s.spawner.InCaptureZone(near) {
		runFor(s, time.Second/60)
	}
	if got := s.HandleKey(key('Z')); got != OutcomeHit {
		t.Fatalf("HandleKey = %v, want hit on the prepaid block", got)
	}
	if s.LaneCooldown(1) {
		t.Fatal("killing the prepaid block should release the cooldown")
	}
	if far.Prepaid {
		t.Fatal("the second block must not inherit the prepayment")
	}

	runFor(s, 4*time.Second)
	if s.Misses() != 2 {
		t.Errorf("misses = %d, want 2 (early press and the second block)", s.Misses())
	}
}

func TestPrepayPendingForNextSpawn(t *testing.T) {
	s := newTestSession(t)
	s.HandleKey(key('X'))
	if !s.pending[1] {
		t.Fatal("empty lane should defer the prepayment")
	}

	var inLane *Block
	for range 200 {
		b := spawnOnce(s)
		if b.Lane == 2 {
			inLane = b
			break
		}
		if b.Prepaid {
			t.Fatalf("block in lane %d took lane 2's prepayment", b.Lane)
		}
	}
	if inLane == nil {
		t.Fatal("no block spawned in lane 2")
	}
	if !inLane.Prepaid || s.pending[1] {
		t.Errorf("Prepaid=%v pending=%v, want true/false", inLane.Prepaid, s.pending[1])
	}
}

func TestSwordKillsFirstNonMalware(t *testing.T) {
	s := newTestSession(t)
	center := (s.spawner.CaptureTop() + s.spawner.CaptureBottom()) / 2
	mal := place(s, Malware, 1, center+10)
	enc := place(s, Encrypted, 2, center)

	if got := s.HandleKey(key('1')); got != OutcomeActivated {
		t.Fatalf("activate sword = %v", got)
	}
	if got := s.HandleKey(key('B')); got != OutcomeHit {
		t.Fatalf("sword press = %v, want hit", got)
	}
	if enc.State != Dead || mal.State != Falling {
		t.Errorf("enc=%v mal=%v", enc.State, mal.State)
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}

	// With only malware left the normal rule applies.
	if got := s.HandleKey(space()); got != OutcomeError {
		t.Errorf("sword on malware = %v, want error", got)
	}
}

func TestPowerupKeys(t *testing.T) {
	s := newTestSession(t)
	runFor(s, 500*time.Millisecond)

	if got := s.HandleKey(key('2')); got != OutcomeActivated {
		t.Fatalf("activate shield = %v", got)
	}
	active, _ := s.ActivePowerup()
	expiry := s.powerups.Expiry()

	if got := s.HandleKey(key('1')); got != OutcomeRejected {
		t.Fatalf("second activation = %v, want rejected", got)
	}
	if a, _ := s.ActivePowerup(); a != active || s.powerups.Expiry() != expiry {
		t.Errorf("active=%v expiry=%v, want %v/%v", a, s.powerups.Expiry(), active, expiry)
	}
	if s.Charges(Sword) != 1 {
		t.Errorf("rejected activation spent a charge")
	}
	if s.Misses() != 0 {
		t.Errorf("power-up keys must not touch error counters")
	}
}

func TestKeysIgnoredUnlessPlaying(t *testing.T) {
	s := newTestSession(t)
	placeInZone(s, Standard, 1)

	s.Pause()
	if got := s.HandleKey(key('Z')); got != OutcomeIgnored {
		t.Errorf("paused = %v, want ignored", got)
	}
	s.Abandon()
	if got := s.HandleKey(key('Z')); got != OutcomeIgnored {
		t.Errorf("abandoned = %v, want ignored", got)
	}
	if s.Hits() != 0 {
		t.Errorf("hits = %d, want 0", s.Hits())
	}
}
