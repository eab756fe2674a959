package config

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLazyCell_computesOnce(t *testing.T) {
	var cell lazyCell[int]
	calls := 0

	for i := 0; i < 3; i++ {
		v, err := cell.Get(func() (int, error) {
			calls++
			return 42, nil
		})
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if v != 42 {
			t.Errorf("Get() = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestLazyCell_failureIsNotMemoized(t *testing.T) {
	var cell lazyCell[string]
	attempt := 0

	_, err := cell.Get(func() (string, error) {
		attempt++
		return "", errors.New("boom")
	})
	if err == nil {
		t.Fatal("first Get() should propagate the error")
	}

	v, err := cell.Get(func() (string, error) {
		attempt++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("second Get() error: %v", err)
	}
	if v != "ok" || attempt != 2 {
		t.Errorf("Get() = %q after %d attempts, want %q after 2", v, attempt, "ok")
	}
}

func TestLazyCell_concurrentCallersObserveOneComputation(t *testing.T) {
	var cell lazyCell[int]
	var computations atomic.Int32

	const workers = 16
	results := make([]int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := cell.Get(func() (int, error) {
				computations.Add(1)
				time.Sleep(10 * time.Millisecond)
				return 7, nil
			})
			if err != nil {
				t.Errorf("Get() error: %v", err)
				return
			}
			results[i] = v
		}(i)
	}
	wg.Wait()

	if n := computations.Load(); n != 1 {
		t.Errorf("compute ran %d times under concurrency, want 1", n)
	}
	for i, v := range results {
		if v != 7 {
			t.Errorf("worker %d observed %d, want 7", i, v)
		}
	}
}
