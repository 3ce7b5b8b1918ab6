package leaktest

import (
	"sync"
	"testing"
)

func TestCheckNoGoroutineLeakPasses(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
			}()
		}
		wg.Wait()
	})
}

func TestCheckerToleratesStableCount(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}
