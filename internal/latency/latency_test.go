package latency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPause(t *testing.T) {
	t.Run("zero returns immediately", func(t *testing.T) {
		start := time.Now()
		Pause(0)
		Pause(-time.Second)
		assert.Less(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("elapses", func(t *testing.T) {
		start := time.Now()
		Pause(20 * time.Millisecond)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})
}

func TestProfiles(t *testing.T) {
	d := Default()
	assert.Greater(t, d.Upload, d.List)
	assert.Greater(t, d.Upload, d.Delete)
	assert.Equal(t, Profile{}, Zero())
}
