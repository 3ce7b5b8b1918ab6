// Package leaktest provides goroutine leak detection for tests that
// exercise pools, subscriptions, and background workers.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineChecker records the goroutine count at creation and compares
// against it later
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a new checker and records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	// Let background goroutines settle before taking the baseline
	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if the goroutine count grew beyond tolerance
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	runtime.Gosched()
	time.Sleep(50 * time.Millisecond)
	runtime.GC()
	time.Sleep(50 * time.Millisecond)

	after := runtime.NumGoroutine()
	leaked := after - g.before
	if leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if any goroutine it started is
// still running afterwards
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
