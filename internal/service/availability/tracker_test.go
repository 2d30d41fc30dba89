package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestTracker_LastRequestWins(t *testing.T) {
	tracker := NewRequestTracker()

	first := tracker.Begin("session-1")
	assert.True(t, tracker.IsLatest("session-1", first))

	second := tracker.Begin("session-1")
	assert.NotEqual(t, first, second)
	assert.False(t, tracker.IsLatest("session-1", first))
	assert.True(t, tracker.IsLatest("session-1", second))

	other := tracker.Begin("session-2")
	assert.True(t, tracker.IsLatest("session-2", other))
	assert.True(t, tracker.IsLatest("session-1", second))
}

func TestRequestTracker_Finish(t *testing.T) {
	tracker := NewRequestTracker()

	stale := tracker.Begin("session-1")
	latest := tracker.Begin("session-1")

	tracker.Finish("session-1", stale)
	assert.True(t, tracker.IsLatest("session-1", latest))

	tracker.Finish("session-1", latest)
	assert.False(t, tracker.IsLatest("session-1", latest))
	assert.Empty(t, tracker.latest)
}
