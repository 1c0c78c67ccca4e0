package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSentences(t *testing.T) {
	lines, err := readSentences(strings.NewReader("\n" + sampleGGA + "\r\n\n  $GPRMC,x*00  \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{sampleGGA, "$GPRMC,x*00"}, lines)
}

type countingPublisher struct {
	mu sync.Mutex
	fakePublisher
}

func (c *countingPublisher) Publish(topic string, retained bool, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fakePublisher.Publish(topic, retained, payload)
}

func (c *countingPublisher) count(topic string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.topic(topic))
}

func TestReplayCyclesUntilCancelled(t *testing.T) {
	p, _ := newTestPublisher(testConfig())
	pub := &countingPublisher{}
	p.pub = pub

	lines := []string{sampleGGA, "$GPGSV,1,1,00*79"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.replay(ctx, lines, time.Millisecond) }()

	// GSV is skipped, so two publishes means the list wrapped around.
	require.Eventually(t, func() bool { return pub.count("inertial/gps") >= 2 }, 2*time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("replay did not stop")
	}
}
