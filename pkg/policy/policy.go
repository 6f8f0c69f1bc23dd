package policy

import (
	"errors"
	"sync"
	"time"

	"github.com/fieldgate-project/fieldgate-go/pkg/model"
)

// Engine errors.
var (
	ErrAlreadyStarted = errors.New("policy engine already started")
)

// checkInterval is how often registered time-flag items are examined.
const checkInterval = 1 * time.Second

// Evaluate applies the change-detection policy to a freshly read value.
// It returns a strictly positive result when the value is publish-worthy,
// zero when it is not, and a negative result when current does not match
// the declared value type.
//
// The time-based rule is not evaluated here; it is driven by the engine's
// timer and reported through the Start callback.
func Evaluate(cfg model.PolicyConfig, current, lastSent model.Value, valueType model.ValueType) int {
	if current.Type != valueType {
		return -1
	}

	if cfg.Flags.Has(model.PolicyChange) && !current.Equal(lastSent) {
		return 1
	}
	if cfg.Flags.Has(model.PolicyLowerThreshold) && below(current, cfg.LowerLimit) {
		return 1
	}
	if cfg.Flags.Has(model.PolicyUpperThreshold) && above(current, cfg.UpperLimit) {
		return 1
	}
	return 0
}

func below(v, limit model.Value) bool {
	if v.Type != limit.Type {
		return false
	}
	switch v.Type {
	case model.ValueTypeInt:
		return v.Int < limit.Int
	case model.ValueTypeFloat:
		return v.Float < limit.Float
	default:
		// Thresholds are only meaningful for numeric types.
		return false
	}
}

func above(v, limit model.Value) bool {
	if v.Type != limit.Type {
		return false
	}
	switch v.Type {
	case model.ValueTypeInt:
		return v.Int > limit.Int
	case model.ValueTypeFloat:
		return v.Float > limit.Float
	default:
		return false
	}
}

type timedItem struct {
	config   model.PolicyConfig
	nextFire time.Time
}

// Engine drives the periodic (time-flag) half of the policy: items
// registered with PolicyTime fire the timeout callback every TimeSec
// seconds, asking the supervisor to publish that sensor regardless of value
// changes.
type Engine struct {
	mu sync.Mutex

	items     map[int]*timedItem
	onTimeout func(sensorID int)

	started bool
	stop    chan struct{}
	wg      sync.WaitGroup

	// now is replaceable in tests.
	now func() time.Time
}

// NewEngine creates a stopped engine.
func NewEngine() *Engine {
	return &Engine{
		items: make(map[int]*timedItem),
		now:   time.Now,
	}
}

// Start begins periodic evaluation, reporting expirations through onTimeout.
func (e *Engine) Start(onTimeout func(sensorID int)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return ErrAlreadyStarted
	}
	e.onTimeout = onTimeout
	e.stop = make(chan struct{})
	e.started = true

	e.wg.Add(1)
	go e.run(e.stop)
	return nil
}

// Stop halts periodic evaluation and drops all registered items.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	close(e.stop)
	e.items = make(map[int]*timedItem)
	e.mu.Unlock()

	e.wg.Wait()
}

// RegisterItem adds (or replaces) the policy config for sensorID.
func (e *Engine) RegisterItem(sensorID int, cfg model.PolicyConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()

	item := &timedItem{config: cfg}
	if cfg.Flags.Has(model.PolicyTime) && cfg.TimeSec > 0 {
		item.nextFire = e.now().Add(time.Duration(cfg.TimeSec) * time.Second)
	}
	e.items[sensorID] = item
}

// Evaluate applies the value-driven policy rules. It is the method form of
// the package-level Evaluate, satisfying the supervisor's contract.
func (e *Engine) Evaluate(cfg model.PolicyConfig, current, lastSent model.Value, valueType model.ValueType) int {
	return Evaluate(cfg, current, lastSent, valueType)
}

func (e *Engine) run(stop chan struct{}) {
	defer e.wg.Done()

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.fireExpired()
		}
	}
}

func (e *Engine) fireExpired() {
	e.mu.Lock()
	now := e.now()
	var expired []int
	for id, item := range e.items {
		if item.nextFire.IsZero() || now.Before(item.nextFire) {
			continue
		}
		item.nextFire = now.Add(time.Duration(item.config.TimeSec) * time.Second)
		expired = append(expired, id)
	}
	onTimeout := e.onTimeout
	e.mu.Unlock()

	if onTimeout == nil {
		return
	}
	for _, id := range expired {
		onTimeout(id)
	}
}
