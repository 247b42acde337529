package breach

import "time"

// Event is a one-way state change notification sent to observers.
type Event interface {
	breachEvent()
}

// Observer receives events synchronously, in emission order.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// ScoreChanged is sent whenever the score moves.
type ScoreChanged struct {
	Score int
}

func (ScoreChanged) breachEvent() {}

// CircuitsChanged is sent when the earned circuit count is reported.
type CircuitsChanged struct {
	Circuits int
}

func (CircuitsChanged) breachEvent() {}

// CircuitLit is sent once per earned circuit slot.
type CircuitLit struct {
	Slot int
}

func (CircuitLit) breachEvent() {}

// CircuitBroken is sent once per broken circuit slot.
type CircuitBroken struct {
	Slot int
}

func (CircuitBroken) breachEvent() {}

// IntegrityChanged reports the remaining tolerance before a break.
type IntegrityChanged struct {
	Integrity int
}

func (IntegrityChanged) breachEvent() {}

// TotalErrorsChanged reports the cumulative penalized error count.
type TotalErrorsChanged struct {
	TotalErrors int
}

func (TotalErrorsChanged) breachEvent() {}

// ChargesChanged reports a slot's new charge count.
type ChargesChanged struct {
	Slot    Powerup
	Charges int
}

func (ChargesChanged) breachEvent() {}

// ActivePowerupChanged reports the running effect, PowerupNone when it ends.
type ActivePowerupChanged struct {
	Slot Powerup
}

func (ActivePowerupChanged) breachEvent() {}

// Severity grades a disturbance.
type Severity int

const (
	SeveritySoft  Severity = iota // A penalized or shielded error
	SeverityBreak                 // A circuit break
)

// Disturbance is a short transient flash. It carries no state.
type Disturbance struct {
	Severity Severity
}

func (Disturbance) breachEvent() {}

// ElapsedChanged is sent when the displayed whole second changes.
type ElapsedChanged struct {
	Elapsed time.Duration
}

func (ElapsedChanged) breachEvent() {}

// SessionEnded is sent once when every circuit slot is filled.
type SessionEnded struct {
	Stats Stats
}

func (SessionEnded) breachEvent() {}

// Stats is the final summary of a session.
type Stats struct {
	Score    int
	Circuits int
	Breaks   int
	Hits     int
	Misses   int
	Elapsed  time.Duration
}
