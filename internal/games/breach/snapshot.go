package breach

// Snapshot contains the complete session state for determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	ElapsedMS         int64
	Status            int
	Score             int
	Circuits          int
	CircuitBreaks     int
	ConsecutiveErrors int
	TotalErrors       int
	Hits              int
	Misses            int
	Integrity         int
	ScoreableSpawned  int
	Speed             int // Rounded down, field units per second
	SpawnIntervalMS   int64
	ActivePowerup     int
	Charges           [PowerupCount]int

	// Each block is 5 ints: Type, Lane, Y (rounded down), Prepaid, EnteredZone
	BlockCount int
	BlockData  []int

	// Slot states in track order
	SlotData []int

	// Lane lock remaining, milliseconds
	LockData []int64
}

// Snapshot returns the current session state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ElapsedMS:         s.clock.Milliseconds(),
		Status:            int(s.status),
		Score:             s.score,
		Circuits:          s.circuits,
		CircuitBreaks:     s.circuitBreaks,
		ConsecutiveErrors: s.consecutiveErrors,
		TotalErrors:       s.totalErrors,
		Hits:              s.hits,
		Misses:            s.misses,
		Integrity:         s.integrity,
		ScoreableSpawned:  s.scoreableSpawned,
		Speed:             int(s.speed),
		SpawnIntervalMS:   s.spawnInterval.Milliseconds(),
		ActivePowerup:     int(s.powerups.Active()),
		BlockCount:        len(s.blocks),
		BlockData:         make([]int, 0, len(s.blocks)*5),
		SlotData:          make([]int, len(s.slots)),
		LockData:          make([]int64, s.cfg.Lanes),
	}

	for slot := Sword; slot <= Overclock; slot++ {
		snap.Charges[slot-1] = s.powerups.Charges(slot)
	}
	for _, b := range s.blocks {
		snap.BlockData = append(snap.BlockData,
			int(b.Type), b.Lane, int(b.Y), boolInt(b.Prepaid), boolInt(b.EnteredZone))
	}
	for i, st := range s.slots {
		snap.SlotData[i] = int(st)
	}
	for lane := 1; lane <= s.cfg.Lanes; lane++ {
		snap.LockData[lane-1] = s.locks.Remaining(lane).Milliseconds()
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.ElapsedMS)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Status)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Circuits)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CircuitBreaks) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.TotalErrors)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Hits)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Misses)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Speed)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BlockCount)    //#nosec G115 -- hash computation

	for _, v := range snap.Charges {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BlockData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.SlotData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.LockData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
