package poll

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Scheduler errors.
var (
	ErrDuplicatePoll = errors.New("poll already exists for sensor")
	ErrDestroyed     = errors.New("scheduler destroyed")
)

// DefaultInterval is the poll period used when a sensor does not configure
// one: the smallest supported unit.
const DefaultInterval = 1 * time.Second

// Callback reads one sensor. A returned error is logged and the poll keeps
// running; the next tick is the retry.
type Callback func(sensorID int) error

// Dispatch hands a poll tick to the supervisor's serial loop. Ticks never
// run on the ticker goroutine directly.
type Dispatch func(fn func())

type entry struct {
	sensorID int
	interval time.Duration
	callback Callback
	stop     chan struct{}
}

// Scheduler runs one ticker per registered sensor. Polls are created before
// Start, paused by Stop, resumed by Start, and destroyed only as a complete
// set - there is no per-poll cancellation.
type Scheduler struct {
	mu sync.Mutex

	entries   map[int]*entry
	running   bool
	destroyed bool
	wg        sync.WaitGroup

	dispatch Dispatch
	logger   *slog.Logger
}

// NewScheduler creates a stopped scheduler dispatching ticks through
// dispatch. A nil logger disables logging.
func NewScheduler(dispatch Dispatch, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		entries:  make(map[int]*entry),
		dispatch: dispatch,
		logger:   logger,
	}
}

// Create registers a poll for sensorID at the given interval. An interval
// of zero falls back to DefaultInterval. The poll does not tick until
// Start is called.
func (s *Scheduler) Create(interval time.Duration, sensorID int, callback func(sensorID int) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ErrDestroyed
	}
	if _, exists := s.entries[sensorID]; exists {
		return ErrDuplicatePoll
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	s.entries[sensorID] = &entry{
		sensorID: sensorID,
		interval: interval,
		callback: callback,
	}
	return nil
}

// Start begins ticking every registered poll. It is a no-op while running.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || s.destroyed {
		return
	}
	s.running = true

	for _, e := range s.entries {
		e.stop = make(chan struct{})
		s.wg.Add(1)
		go s.run(e)
	}
}

// Stop pauses all polls. Registered entries survive and resume on the next
// Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	for _, e := range s.entries {
		close(e.stop)
		e.stop = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// Destroy stops all polls and discards the whole set. The scheduler cannot
// be reused afterwards.
func (s *Scheduler) Destroy() {
	s.Stop()

	s.mu.Lock()
	s.entries = make(map[int]*entry)
	s.destroyed = true
	s.mu.Unlock()
}

// Len returns the number of registered polls.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Scheduler) run(e *entry) {
	defer s.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	stop := e.stop
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.dispatch(func() {
				if err := e.callback(e.sensorID); err != nil {
					s.logger.Debug("poll read failed",
						"sensor_id", e.sensorID, "error", err)
				}
			})
		}
	}
}
