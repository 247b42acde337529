package breach

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/core"
)

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle      Status = iota // Created, not started
	StatusPlaying                 // Accepting ticks and keys
	StatusPaused                  // Time stopped
	StatusEnded                   // All circuit slots filled
	StatusAbandoned               // Left before the end
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	case StatusAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Settings are the choices made on the setup screen.
// Zero values keep whatever the configuration says.
type Settings struct {
	Lanes      int
	Difficulty config.DifficultyLevel
}

// SlotState describes one cell of the circuit track.
type SlotState int

const (
	SlotEmpty SlotState = iota
	SlotLit
	SlotBroken
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithObserver registers an observer for state change events.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// Session is one run of the game. It is not safe for concurrent use;
// each goroutine drives its own session.
type Session struct {
	cfg     config.BreachConfig
	profile config.SpeedProfile

	rng      *core.SimpleRNG
	spawner  *Spawner
	powerups *PowerupSystem
	locks    *ColumnLocks

	log       *log.Logger
	observers []Observer

	status Status
	last   time.Duration // Timestamp of the last applied tick
	clock  time.Duration // Sum of applied deltas
	blocks []*Block

	score             int
	circuits          int
	circuitBreaks     int
	consecutiveErrors int
	totalErrors       int
	misses            int
	hits              int
	integrity         int
	lastGrantCircuit  int
	slots             []SlotState

	speed            float64
	spawnInterval    time.Duration
	nextSpawnIn      time.Duration
	scoreableSpawned int

	cooldown []bool // Lane has an outstanding early false press
	pending  []bool // Cooldown waiting for the next block spawned in the lane

	glitch time.Duration
}

// NewSession creates a session from a configuration and the setup choices.
// The same configuration, settings, seed and inputs always produce the
// same session.
func NewSession(cfg config.BreachConfig, settings Settings, seed int64, opts ...Option) (*Session, error) {
	if err := config.ApplySettings(&cfg, settings.Lanes, settings.Difficulty); err != nil {
		return nil, fmt.Errorf("breach: %w", err)
	}

	rng := core.NewSimpleRNG(seed)
	s := &Session{
		cfg:       cfg,
		profile:   cfg.SpeedProfile(),
		rng:       rng,
		spawner:   NewSpawner(cfg, rng),
		powerups:  NewPowerupSystem(cfg.Powerups, rng),
		locks:     NewColumnLocks(cfg.Lanes, cfg.Lockout.Duration),
		log:       log.NewWithOptions(io.Discard, log.Options{}),
		status:    StatusIdle,
		integrity: cfg.Rules.MaxErrors,
		slots:     make([]SlotState, cfg.Rules.MaxCircuits),

		speed:         cfg.SpeedProfile().Base,
		spawnInterval: cfg.Spawn.Interval,
		nextSpawnIn:   cfg.Spawn.InitialDelay,

		cooldown: make([]bool, cfg.Lanes),
		pending:  make([]bool, cfg.Lanes),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start begins play with now as the time baseline and announces the
// initial state to observers.
func (s *Session) Start(now time.Duration) {
	if s.status != StatusIdle {
		return
	}
	s.status = StatusPlaying
	s.last = now

	s.log.Debug("session started",
		"lanes", s.cfg.Lanes,
		"difficulty", config.DifficultyLevel(s.cfg.Difficulty.Level),
		"speed", s.speed)

	s.emit(ScoreChanged{Score: s.score})
	s.emit(CircuitsChanged{Circuits: s.circuits})
	s.emit(IntegrityChanged{Integrity: s.integrity})
	s.emit(TotalErrorsChanged{TotalErrors: s.totalErrors})
	for slot := Sword; slot <= Overclock; slot++ {
		s.emit(ChargesChanged{Slot: slot, Charges: s.powerups.Charges(slot)})
	}
	s.emit(ActivePowerupChanged{Slot: PowerupNone})
	s.emit(ElapsedChanged{Elapsed: 0})
}

// Pause stops time. Ticks and keys are ignored until Resume.
func (s *Session) Pause() {
	if s.status != StatusPlaying {
		return
	}
	s.status = StatusPaused
	s.log.Debug("session paused", "elapsed", s.clock)
}

// Resume restarts time with now as the new baseline, so the paused
// interval never reaches the simulation.
func (s *Session) Resume(now time.Duration) {
	if s.status != StatusPaused {
		return
	}
	s.status = StatusPlaying
	s.last = now
	s.log.Debug("session resumed", "elapsed", s.clock)
}

// Abandon stops the session without reporting an end.
func (s *Session) Abandon() {
	if s.status == StatusEnded || s.status == StatusAbandoned {
		return
	}
	s.status = StatusAbandoned
	s.log.Debug("session abandoned", "elapsed", s.clock, "score", s.score)
}

// Tick advances the simulation to timestamp now. The applied delta is
// clamped to MaxFrameDelta so stalls never produce a large jump.
func (s *Session) Tick(now time.Duration) {
	if s.status != StatusPlaying {
		return
	}
	dt := now - s.last
	if dt < 0 {
		dt = 0
	} else {
		s.last = now
	}
	s.advance(min(dt, s.cfg.Timing.MaxFrameDelta))
}

// advance applies one fully clamped delta to every subsystem.
func (s *Session) advance(dt time.Duration) {
	prevSecond := s.clock / time.Second
	s.clock += dt
	if s.clock/time.Second != prevSecond {
		s.emit(ElapsedChanged{Elapsed: s.clock})
	}

	if s.glitch > 0 {
		s.glitch = max(0, s.glitch-dt)
	}
	s.locks.Tick(dt)
	if s.powerups.Tick(s.clock) {
		s.emit(ActivePowerupChanged{Slot: PowerupNone})
	}

	s.updateSpawn(dt)
	s.updateBlocks(dt)

	if s.nextSlotIndex() >= s.cfg.Rules.MaxCircuits {
		s.end()
	}
}

// overclockScale returns the factor applied to fall speed and spawn countdown.
func (s *Session) overclockScale() float64 {
	if s.powerups.IsActive(Overclock) {
		return s.cfg.Powerups.OverclockFactor
	}
	return 1.0
}

func (s *Session) updateSpawn(dt time.Duration) {
	s.nextSpawnIn -= time.Duration(float64(dt) * s.overclockScale())
	if s.nextSpawnIn > 0 {
		return
	}

	force := s.scoreableSpawned >= s.cfg.Rules.MaxScoreable
	b := s.spawner.CreateBlock(s.circuits, force)
	if !force && b.Type.Scoreable() {
		s.scoreableSpawned++
		s.checkDifficulty()
	}
	b.SpawnSpeed = s.speed

	lane := b.Lane - 1
	if s.pending[lane] {
		s.pending[lane] = false
		b.Prepaid = true
	}
	s.blocks = append(s.blocks, b)

	jitter := s.cfg.Spawn.JitterMin + s.rng.Float64()*s.cfg.Spawn.JitterSpan
	s.nextSpawnIn = time.Duration(float64(s.spawnInterval) * jitter)
}

func (s *Session) updateBlocks(dt time.Duration) {
	fall := s.speed * s.overclockScale() * dt.Seconds()

	kept := s.blocks[:0]
	for _, b := range s.blocks {
		b.Y += fall
		if b.Glitch > 0 {
			b.Glitch = max(0, b.Glitch-dt)
		}

		if !b.EnteredZone && s.spawner.InCaptureZone(b) {
			b.EnteredZone = true
		}
		if b.EnteredZone && s.spawner.PassedCaptureBottom(b) {
			s.resolveExit(b)
			continue
		}
		// Stragglers that skipped the band between two ticks.
		if s.spawner.PassedField(b) {
			b.State = Passed
			s.release(b)
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(s.blocks); i++ {
		s.blocks[i] = nil
	}
	s.blocks = kept
}

// resolveExit settles a block whose center left the capture band unanswered.
func (s *Session) resolveExit(b *Block) {
	b.State = Passed
	switch b.Type {
	case Malware:
		// Left alone, as it should be.
	case Virus:
		s.onError(b)
		if s.locks.Lock(b.Lane) {
			s.log.Debug("lane locked", "lane", b.Lane, "for", s.cfg.Lockout.Duration)
		}
	default:
		if !b.Prepaid {
			s.onError(b)
		}
	}
	s.release(b)
}

// release clears the lane cooldown held by a prepaid block leaving play.
func (s *Session) release(b *Block) {
	if b.Prepaid {
		s.cooldown[b.Lane-1] = false
	}
}

// removeBlock drops b from the active set.
func (s *Session) removeBlock(b *Block) {
	for i, other := range s.blocks {
		if other == b {
			copy(s.blocks[i:], s.blocks[i+1:])
			s.blocks[len(s.blocks)-1] = nil
			s.blocks = s.blocks[:len(s.blocks)-1]
			return
		}
	}
}

func (s *Session) end() {
	s.status = StatusEnded
	stats := s.Stats()
	s.log.Debug("session ended",
		"score", stats.Score,
		"circuits", stats.Circuits,
		"breaks", stats.Breaks,
		"elapsed", stats.Elapsed)
	s.emit(SessionEnded{Stats: stats})
}

func (s *Session) emit(e Event) {
	for _, o := range s.observers {
		o.OnEvent(e)
	}
}

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Config returns the effective configuration.
func (s *Session) Config() config.BreachConfig { return s.cfg }

// Stats returns the current summary.
func (s *Session) Stats() Stats {
	return Stats{
		Score:    s.score,
		Circuits: s.circuits,
		Breaks:   s.circuitBreaks,
		Hits:     s.hits,
		Misses:   s.misses,
		Elapsed:  s.clock,
	}
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Circuits returns the number of earned circuits.
func (s *Session) Circuits() int { return s.circuits }

// CircuitBreaks returns the number of broken circuits.
func (s *Session) CircuitBreaks() int { return s.circuitBreaks }

// Integrity returns how many more consecutive errors are tolerated.
func (s *Session) Integrity() int { return s.integrity }

// ConsecutiveErrors returns the current run of penalized errors.
func (s *Session) ConsecutiveErrors() int { return s.consecutiveErrors }

// TotalErrors returns the cumulative penalized error count.
func (s *Session) TotalErrors() int { return s.totalErrors }

// Hits returns the number of successful answers.
func (s *Session) Hits() int { return s.hits }

// Misses returns the number of errors, shielded ones included.
func (s *Session) Misses() int { return s.misses }

// Elapsed returns the session clock.
func (s *Session) Elapsed() time.Duration { return s.clock }

// Speed returns the current base fall speed in field units per second.
func (s *Session) Speed() float64 { return s.speed }

// SpeedPercent returns the ramp progress between base and max speed.
func (s *Session) SpeedPercent() int { return s.profile.Percent(s.speed) }

// SpawnInterval returns the current base spawn interval.
func (s *Session) SpawnInterval() time.Duration { return s.spawnInterval }

// ScoreableSpawned returns how many scoreable blocks have spawned.
func (s *Session) ScoreableSpawned() int { return s.scoreableSpawned }

// Glitch returns the remaining screen disturbance time.
func (s *Session) Glitch() time.Duration { return s.glitch }

// Lanes returns the lane count.
func (s *Session) Lanes() int { return s.cfg.Lanes }

// Spawner returns the spawner, for zone geometry queries.
func (s *Session) Spawner() *Spawner { return s.spawner }

// Blocks returns copies of the falling blocks in spawn order.
func (s *Session) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = *b
	}
	return out
}

// Slot returns the state of circuit slot i.
func (s *Session) Slot(i int) SlotState {
	if i < 0 || i >= len(s.slots) {
		return SlotEmpty
	}
	return s.slots[i]
}

// ActivePowerup returns the running effect and its remaining time.
func (s *Session) ActivePowerup() (Powerup, time.Duration) {
	return s.powerups.Active(), s.powerups.Remaining(s.clock)
}

// Charges returns the charge count of slot.
func (s *Session) Charges(slot Powerup) int { return s.powerups.Charges(slot) }

// LaneLock returns the time left on lane's lockout.
func (s *Session) LaneLock(lane int) time.Duration { return s.locks.Remaining(lane) }

// LaneCooldown reports whether lane has an outstanding early false press.
func (s *Session) LaneCooldown(lane int) bool {
	if lane < 1 || lane > len(s.cooldown) {
		return false
	}
	return s.cooldown[lane-1]
}
