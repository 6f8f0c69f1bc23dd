package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopRunsInOrder(t *testing.T) {
	l := NewLoop()
	defer l.Stop()

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		l.Dispatch(func() { got = append(got, i) })
	}
	l.Flush()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestLoopDropsAfterStop(t *testing.T) {
	l := NewLoop()

	ran := false
	l.Dispatch(func() { ran = true })
	l.Stop()

	assert.True(t, ran, "queued work should drain before Stop returns")

	l.Dispatch(func() { t.Error("dispatch after Stop must not run") })
	l.Flush()
}

func TestLoopStopIdempotent(t *testing.T) {
	l := NewLoop()
	l.Stop()
	l.Stop()
}
