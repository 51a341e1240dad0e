package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/inspire-quotes/internal/platform/config"
)

// State is a circuit breaker state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker trips after MaxFailures consecutive failed calls and refuses calls
// for Timeout. It then lets up to HalfOpenLimit probes through; that many
// successes close it again and any failure reopens it. A breaker built from a
// config without Enabled never leaves StateClosed.
type Breaker struct {
	cfg config.CircuitBreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	probes   int
	passed   int
	openedAt time.Time
	onChange func(from, to State)
}

// NewBreaker returns a closed breaker. Zero config fields fall back to
// 5 failures, 30s and 1 probe.
func NewBreaker(cfg config.CircuitBreakerConfig) *Breaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HalfOpenLimit <= 0 {
		cfg.HalfOpenLimit = 1
	}

	return &Breaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run, in its own goroutine, on each transition.
func (b *Breaker) OnStateChange(fn func(from, to State)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.onChange = fn
}

// Allow reports whether a call may proceed. Every allowed call must be
// followed by exactly one Success or Failure.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.cfg.Enabled {
		return true
	}

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.cfg.Timeout {
			return false
		}
		b.setState(StateHalfOpen)
		fallthrough
	case StateHalfOpen:
		if b.probes >= b.cfg.HalfOpenLimit {
			return false
		}
		b.probes++
		return true
	default:
		return true
	}
}

// Success records a completed call.
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.probes--
		b.passed++
		if b.passed >= b.cfg.HalfOpenLimit {
			b.setState(StateClosed)
		}
	}
}

// Failure records a failed call.
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.cfg.Enabled {
		return
	}

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.MaxFailures {
			b.setState(StateOpen)
		}
	case StateHalfOpen:
		b.setState(StateOpen)
	}
}

// State returns the current state without transitioning.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// setState must be called with mu held.
func (b *Breaker) setState(to State) {
	from := b.state
	if from == to {
		return
	}

	b.state = to
	b.failures, b.probes, b.passed = 0, 0, 0
	if to == StateOpen {
		b.openedAt = b.now()
	}

	if b.onChange != nil {
		go b.onChange(from, to)
	}
}
