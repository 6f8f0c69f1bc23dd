package poll

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// directDispatch runs ticks inline, matching how tests observe callbacks.
func directDispatch(fn func()) { fn() }

func TestSchedulerCreateDuplicate(t *testing.T) {
	s := NewScheduler(directDispatch, nil)

	if err := s.Create(time.Second, 1, func(int) error { return nil }); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Create(time.Second, 1, func(int) error { return nil }); !errors.Is(err, ErrDuplicatePoll) {
		t.Errorf("duplicate Create: got %v, want ErrDuplicatePoll", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSchedulerTicksAfterStart(t *testing.T) {
	var mu sync.Mutex
	ticks := make(map[int]int)

	s := NewScheduler(directDispatch, nil)
	for _, id := range []int{1, 2} {
		id := id
		if err := s.Create(5*time.Millisecond, id, func(sensorID int) error {
			mu.Lock()
			defer mu.Unlock()
			ticks[sensorID]++
			return nil
		}); err != nil {
			t.Fatalf("Create %d failed: %v", id, err)
		}
	}

	s.Start()
	defer s.Destroy()

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		done := ticks[1] >= 2 && ticks[2] >= 2
		mu.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("polls did not tick: %v", ticks)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSchedulerStopPausesTicks(t *testing.T) {
	var mu sync.Mutex
	count := 0

	s := NewScheduler(directDispatch, nil)
	if err := s.Create(5*time.Millisecond, 1, func(int) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	mu.Lock()
	after := count
	mu.Unlock()

	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	final := count
	mu.Unlock()

	if final != after {
		t.Errorf("ticks continued after Stop: %d -> %d", after, final)
	}

	// Entries survive Stop and resume.
	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Destroy()

	mu.Lock()
	resumed := count
	mu.Unlock()
	if resumed <= final {
		t.Error("polls did not resume after restart")
	}
}

func TestSchedulerDestroyDiscardsSet(t *testing.T) {
	s := NewScheduler(directDispatch, nil)
	if err := s.Create(time.Second, 1, func(int) error { return nil }); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	s.Destroy()

	if s.Len() != 0 {
		t.Errorf("Len after Destroy = %d, want 0", s.Len())
	}
	if err := s.Create(time.Second, 2, func(int) error { return nil }); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Create after Destroy: got %v, want ErrDestroyed", err)
	}

	// Destroy is safe to call again.
	s.Destroy()
}

func TestSchedulerCallbackErrorKeepsTicking(t *testing.T) {
	var mu sync.Mutex
	count := 0

	s := NewScheduler(directDispatch, nil)
	if err := s.Create(5*time.Millisecond, 1, func(int) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return errors.New("read failed")
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	s.Start()
	defer s.Destroy()

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := count
		mu.Unlock()
		if n >= 3 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("poll stopped after errors: %d ticks", n)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
