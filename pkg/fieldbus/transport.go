package fieldbus

import (
	"context"
	"errors"

	"github.com/fieldgate-project/fieldgate-go/pkg/model"
)

// Transport errors.
var (
	ErrNotConnected = errors.New("fieldbus not connected")
	ErrBadRegister  = errors.New("register not mapped")
)

// Transport is one fieldbus wire protocol (Modbus TCP, Modbus RTU, a
// simulator). Implementations carry their own connection handle; the Link
// above them decides when to connect and when a loss needs reconnection.
type Transport interface {
	// Connect opens the wire to the slave behind url.
	Connect(ctx context.Context, url string, slaveID int) error

	// Close releases the wire. Safe to call when not connected.
	Close() error

	// ReadRegister fetches one register word and decodes it per the
	// sensor's declared value type. It fails with ErrNotConnected when
	// the wire is down.
	ReadRegister(source model.RegisterSource, valueType model.ValueType) (model.Value, error)
}

// decodeWord turns one 16-bit register word into a typed value. Booleans
// select the bit at the source's bit offset; the other types widen the whole
// word.
func decodeWord(word uint16, source model.RegisterSource, valueType model.ValueType) model.Value {
	switch valueType {
	case model.ValueTypeBool:
		return model.BoolValue(word&(1<<uint(source.BitOffset)) != 0)
	case model.ValueTypeInt:
		return model.IntValue(int64(word))
	case model.ValueTypeFloat:
		return model.FloatValue(float64(word))
	case model.ValueTypeRaw:
		return model.RawValue([]byte{byte(word >> 8), byte(word)})
	default:
		return model.Value{}
	}
}
