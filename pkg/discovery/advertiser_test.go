package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeTXT(t *testing.T) {
	txt := EncodeTXT(Info{DeviceID: "0123456789abcdef", Name: "boiler-room"})
	assert.Equal(t, []string{"name=boiler-room", "id=0123456789abcdef"}, txt)

	// An unregistered device advertises without an id record.
	txt = EncodeTXT(Info{Name: "boiler-room"})
	assert.Equal(t, []string{"name=boiler-room"}, txt)
}

func TestStopWithoutAdvertise(t *testing.T) {
	a := NewAdvertiser()
	a.Stop()
	a.Stop()
}
