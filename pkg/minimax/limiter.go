package minimax

import (
	"context"
	"sync/atomic"
)

type StopReason int

const (
	StopNone      StopReason = iota
	StopInterrupt StopReason = 1 // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime  StopReason = 2 // Time limit reached
	StopNodes     StopReason = 4 // Node limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopNodes, "Nodes"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

type LimiterLike interface {
	SetContext(ctx context.Context)
	// Set the limits
	SetLimits(*Limits)
	// Get the limits
	Limits() *Limits
	// Get elapsed time in ms (from the last 'Reset' call)
	Elapsed() uint32
	// Set the stop signal, will cause to exit search if set to true
	SetStop(bool)
	// Get the stop signal
	Stop() bool
	// Reset the limiter's flags, called on search setup
	Reset()
	// Whether the search may continue, called on every visited node
	Ok(nodes uint32) bool
	// Get the reason why the search was stopped, valid after search ends
	StopReason() StopReason
	// Evaluate stop reason based on current state, called once after the search ends
	EvaluateStopReason(nodes uint32)
}

type Limiter struct {
	limits *Limits
	clock  clock
	stop   atomic.Bool
	reason StopReason
	ctx    context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		ctx:    context.Background(),
	}
}

func (l *Limiter) Reset() {
	l.clock.reset(l.limits.Movetime)
	l.stop.Store(false)
	l.reason = StopNone
}

func (l *Limiter) EvaluateStopReason(nodes uint32) {
	reason := StopNone

	if l.ctx.Err() != nil || (l.stop.Load() && !l.limitReached(nodes)) {
		reason |= StopInterrupt
	}

	if !l.limits.Infinite {
		if l.clock.expired() {
			reason |= StopMovetime
		}
		if l.limits.Nodes < nodes {
			reason |= StopNodes
		}
	}

	l.reason = reason
}

func (l *Limiter) limitReached(nodes uint32) bool {
	return !l.limits.Infinite && (l.clock.expired() || l.limits.Nodes < nodes)
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) SetContext(ctx context.Context) {
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return l.clock.elapsedMs()
}

// Node limit is checked on every call, the clock and the context
// only every 'checkInterval' nodes
func (l *Limiter) Ok(nodes uint32) bool {
	if l.stop.Load() {
		return false
	}

	if !l.limits.Infinite && l.limits.Nodes < nodes {
		l.stop.Store(true)
		return false
	}

	if nodes%checkInterval == 0 {
		if l.Stop() {
			return false
		}
		if !l.limits.Infinite && l.clock.expired() {
			l.stop.Store(true)
			return false
		}
	}

	return true
}
