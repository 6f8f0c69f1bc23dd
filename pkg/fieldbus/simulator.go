package fieldbus

import (
	"context"
	"sync"

	"github.com/fieldgate-project/fieldgate-go/pkg/model"
)

// Simulator is an in-memory transport for development and tests: a register
// bank written by SetRegister and read back through the normal Transport
// path.
type Simulator struct {
	mu        sync.Mutex
	connected bool
	registers map[int]uint16

	// ConnectErr, when set, makes every Connect attempt fail.
	ConnectErr error
}

// NewSimulator creates a disconnected simulator with an empty register bank.
func NewSimulator() *Simulator {
	return &Simulator{registers: make(map[int]uint16)}
}

// SetRegister writes one register word, creating it if absent.
func (s *Simulator) SetRegister(regAddr int, word uint16) {
	s.mu.Lock()
	s.registers[regAddr] = word
	s.mu.Unlock()
}

// Connect marks the simulator connected. url and slaveID are accepted but
// unused.
func (s *Simulator) Connect(ctx context.Context, url string, slaveID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ConnectErr != nil {
		return s.ConnectErr
	}
	s.connected = true
	return nil
}

// Close marks the simulator disconnected.
func (s *Simulator) Close() error {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()
	return nil
}

// Disconnect simulates a wire loss: subsequent reads fail with
// ErrNotConnected until the link reconnects.
func (s *Simulator) Disconnect() {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()
}

// ReadRegister reads one register word from the bank.
func (s *Simulator) ReadRegister(source model.RegisterSource, valueType model.ValueType) (model.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return model.Value{}, ErrNotConnected
	}
	word, ok := s.registers[source.RegAddr]
	if !ok {
		return model.Value{}, ErrBadRegister
	}
	return decodeWord(word, source, valueType), nil
}

var _ Transport = (*Simulator)(nil)
