package app

import (
	"bytes"
	"context"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/relabs-tech/nmea_gga/internal/gps"
)

func litPixels(img *image1bit.VerticalLSB) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.BitAt(x, y) == image1bit.On {
				n++
			}
		}
	}
	return n
}

func TestFixLinesWaiting(t *testing.T) {
	assert.Equal(t, []string{"", "GPS Position", "Waiting..."}, fixLines(gps.Fix{}, false))
}

func TestFixLinesSample(t *testing.T) {
	lines := fixLines(gps.Parse(sampleGGA), true)
	assert.Equal(t, []string{
		"Lat 53.3613N",
		"Lon 6.5056W",
		"Alt 62m",
		"Sat 8 Fix 1",
	}, lines)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), displayWidth/7, "line %q overflows", l)
	}
}

func TestFixLinesAbsentValues(t *testing.T) {
	assert.Equal(t, []string{
		"Lat N/A",
		"Lon N/A",
		"Alt N/A",
		"Sat N/A Fix N/A",
	}, fixLines(gps.EmptyFix(), true))
}

func TestRenderLines(t *testing.T) {
	blank := renderLines()
	assert.Equal(t, image.Rect(0, 0, displayWidth, displayHeight), blank.Bounds())
	assert.Zero(t, litPixels(blank))

	one := litPixels(renderLines("Alt 62m"))
	two := litPixels(renderLines("Alt 62m", "Alt 62m"))
	assert.Positive(t, one)
	assert.Equal(t, 2*one, two)
}

type fakePanel struct {
	mu     sync.Mutex
	frames int
}

func (p *fakePanel) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	p.mu.Lock()
	p.frames++
	p.mu.Unlock()
	return nil
}

func (p *fakePanel) Bounds() image.Rectangle {
	return image.Rect(0, 0, displayWidth, displayHeight)
}

func (p *fakePanel) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

func TestDisplayLoopRedrawsUntilCancelled(t *testing.T) {
	p := &fakePanel{}
	data := &displayData{}
	data.set(gps.Parse(sampleGGA))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- displayLoop(ctx, p, data, time.Millisecond, newLoggerTo(&bytes.Buffer{}, "display", "info"))
	}()

	require.Eventually(t, func() bool { return p.count() >= 3 }, 2*time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("display loop did not stop")
	}
}
