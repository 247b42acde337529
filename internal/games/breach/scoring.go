package breach

// nextSlotIndex is the shared position on the circuit track. Earned and
// broken circuits both consume slots from it, so a slot is never reused.
func (s *Session) nextSlotIndex() int {
	return s.circuits + s.circuitBreaks
}

func (s *Session) setIntegrity(v int) {
	v = max(0, v)
	if v == s.integrity {
		return
	}
	s.integrity = v
	s.emit(IntegrityChanged{Integrity: v})
}

// onHit records a correct answer to b.
func (s *Session) onHit(b *Block) {
	s.hits++
	s.consecutiveErrors = 0
	s.setIntegrity(s.cfg.Rules.MaxErrors)

	if !b.Type.Scoreable() {
		return
	}

	s.score++
	s.emit(ScoreChanged{Score: s.score})

	target := min(s.cfg.Rules.MaxCircuits, s.score/s.cfg.Rules.PointsPerCircuit)
	lit := false
	for s.circuits < target && s.nextSlotIndex() < s.cfg.Rules.MaxCircuits {
		slot := s.nextSlotIndex()
		s.slots[slot] = SlotLit
		s.circuits++
		lit = true
		s.emit(CircuitLit{Slot: slot})
	}
	if lit {
		s.emit(CircuitsChanged{Circuits: s.circuits})
		s.grantPowerups()
	}
}

// grantPowerups adds one random charge per newly crossed multiple of
// GrantEvery circuits.
func (s *Session) grantPowerups() {
	every := s.cfg.Rules.GrantEvery
	for next := s.lastGrantCircuit + every; next <= s.circuits; next += every {
		s.lastGrantCircuit = next
		slot := s.powerups.GrantRandom()
		s.log.Debug("power-up granted", "slot", slot, "circuits", s.circuits)
		s.emit(ChargesChanged{Slot: slot, Charges: s.powerups.Charges(slot)})
	}
}

// onError records a wrong answer or an unanswered block. b may be nil
// for presses on an empty capture zone.
func (s *Session) onError(b *Block) {
	s.misses++

	if !s.powerups.IsActive(Shield) {
		s.consecutiveErrors++
		s.totalErrors++
		s.setIntegrity(s.cfg.Rules.MaxErrors - s.consecutiveErrors)
		s.emit(TotalErrorsChanged{TotalErrors: s.totalErrors})

		// The milestone wins over the consecutive threshold so one error
		// never breaks two circuits.
		if s.totalErrors%s.cfg.Rules.ErrorMilestone == 0 {
			s.consecutiveErrors = 0
			s.setIntegrity(s.cfg.Rules.MaxErrors)
			s.onCircuitBreak()
			return
		}
		if s.consecutiveErrors >= s.cfg.Rules.MaxErrors {
			s.onCircuitBreak()
			return
		}
	}

	s.glitch = s.cfg.Timing.SoftGlitch
	s.emit(Disturbance{Severity: SeveritySoft})
}

// onCircuitBreak consumes the next slot as broken and rolls the score
// back to the last circuit boundary.
func (s *Session) onCircuitBreak() {
	s.consecutiveErrors = 0
	s.setIntegrity(s.cfg.Rules.MaxErrors)
	if s.nextSlotIndex() >= s.cfg.Rules.MaxCircuits {
		return
	}

	slot := s.nextSlotIndex()
	s.circuitBreaks++
	s.slots[slot] = SlotBroken

	ppc := s.cfg.Rules.PointsPerCircuit
	if floored := s.score / ppc * ppc; floored != s.score {
		s.score = floored
		s.emit(ScoreChanged{Score: s.score})
	}

	s.glitch = s.cfg.Timing.BreakGlitch
	s.nextSpawnIn = max(s.nextSpawnIn, s.cfg.Spawn.Recovery)

	s.log.Debug("circuit broken", "slot", slot, "breaks", s.circuitBreaks, "score", s.score)
	s.emit(CircuitBroken{Slot: slot})
	s.emit(CircuitsChanged{Circuits: s.circuits})
	s.emit(Disturbance{Severity: SeverityBreak})
}

// checkDifficulty steps the ramp every StepBlocks scoreable spawns, up to
// RampCap spawns.
func (s *Session) checkDifficulty() {
	n := s.scoreableSpawned
	sp := s.cfg.Speed
	if n == 0 || n%sp.StepBlocks != 0 || n > sp.RampCap {
		return
	}
	s.speed = min(s.profile.Max, s.speed+s.profile.Step)
	s.spawnInterval = max(s.cfg.Spawn.MinInterval, s.spawnInterval-s.cfg.Spawn.IntervalStep)
	s.log.Debug("difficulty step", "speed", s.speed, "interval", s.spawnInterval)
}
