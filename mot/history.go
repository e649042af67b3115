package mot

import (
	"math"

	"github.com/bmharper/ringbuffer"
)

// DefaultMaxHistory is the trailing window of centers kept per track
const DefaultMaxHistory = 15

// positionHistory is a bounded trailing window of track centers.
// The ring itself is sized to next power of two, window length is enforced on read.
type positionHistory struct {
	ring   ringbuffer.RingP[Point]
	window int
}

func newPositionHistory(window int) positionHistory {
	if window < 1 {
		window = 1
	}
	return positionHistory{
		ring:   ringbuffer.NewRingP[Point](nextPowerOf2(maxInt(window, 2))),
		window: window,
	}
}

// Add appends new center, dropping the oldest one on overflow
func (h *positionHistory) Add(p Point) {
	h.ring.Add(p)
}

// Len returns number of centers inside the window
func (h *positionHistory) Len() int {
	return minInt(h.ring.Len(), h.window)
}

// At returns i-th center of the window, 0 being the oldest
func (h *positionHistory) At(i int) Point {
	return h.ring.Peek(h.ring.Len() - h.Len() + i)
}

// Last returns the most recent center
func (h *positionHistory) Last() Point {
	return h.ring.Peek(h.ring.Len() - 1)
}

// Points returns copy of the window, oldest first
func (h *positionHistory) Points() []Point {
	n := h.Len()
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		out[i] = h.At(i)
	}
	return out
}

func nextPowerOf2(n int) int {
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
