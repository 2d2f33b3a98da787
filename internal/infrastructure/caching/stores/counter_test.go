package stores

import (
	"sync"
	"testing"
)

func TestCounterStartsAtZero(t *testing.T) {
	counter := NewCounterStore(nil)

	if got := counter.Get(); got != 0 {
		t.Errorf("Get() = %d; want 0", got)
	}
	if got := counter.IncrementAndGet(); got != 1 {
		t.Errorf("first IncrementAndGet() = %d; want 1", got)
	}
}

func TestCounterConcurrentIncrements(t *testing.T) {
	counter := NewCounterStore(nil)

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				counter.IncrementAndGet()
			}
		}()
	}
	wg.Wait()

	if got := counter.Get(); got != goroutines*perGoroutine {
		t.Errorf("Get() = %d; want %d", got, goroutines*perGoroutine)
	}
}

func TestCounterSetForImport(t *testing.T) {
	counter := NewCounterStore(nil)
	counter.Set(42)

	if got := counter.IncrementAndGet(); got != 43 {
		t.Errorf("IncrementAndGet() after Set(42) = %d; want 43", got)
	}
}
