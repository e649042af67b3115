package mot

// Track is a single identity maintained across frames.
// It is mutated only by its owning tracker.
type Track struct {
	id              int64
	currentBBox     BBox
	confidence      float64
	currentCenter   Point
	history         positionHistory
	stats           MotionStats
	age             int
	missed          int
	lastUpdateFrame int
}

// NewTrack creates track with single-point history from the given detection
func NewTrack(id int64, detection Detection, frame int) *Track {
	return NewTrackWithHistory(id, detection, frame, DefaultMaxHistory)
}

// NewTrackWithHistory creates track which keeps up to maxHistory recent centers
func NewTrackWithHistory(id int64, detection Detection, frame int, maxHistory int) *Track {
	track := Track{
		id:              id,
		currentBBox:     detection.BBox,
		confidence:      detection.Confidence,
		currentCenter:   detection.GetCenter(),
		history:         newPositionHistory(maxHistory),
		age:             1,
		missed:          0,
		lastUpdateFrame: frame,
	}
	track.history.Add(track.currentCenter)
	track.stats = ComputeMotionStats(track.history.Points())
	return &track
}

// GetID returns track's identifier
func (track *Track) GetID() int64 {
	return track.id
}

// GetBBox returns track's current bounding box
func (track *Track) GetBBox() BBox {
	return track.currentBBox
}

// GetConfidence returns confidence of the last matched detection
func (track *Track) GetConfidence() float64 {
	return track.confidence
}

// GetCenter returns track's current center
func (track *Track) GetCenter() Point {
	return track.currentCenter
}

// GetStats returns motion statistics computed on last update
func (track *Track) GetStats() MotionStats {
	return track.stats
}

// GetAge returns number of frames since creation
func (track *Track) GetAge() int {
	return track.age
}

// GetMissed returns number of consecutive frames without a match
func (track *Track) GetMissed() int {
	return track.missed
}

// GetLastUpdateFrame returns index of the frame of last successful match
func (track *Track) GetLastUpdateFrame() int {
	return track.lastUpdateFrame
}

// History returns copy of the trailing window of centers, oldest first
func (track *Track) History() []Point {
	return track.history.Points()
}

// Predict extrapolates next center with the last one-step displacement
func (track *Track) Predict() Point {
	if track.history.Len() < 2 {
		return track.currentCenter
	}
	prev := track.history.At(track.history.Len() - 2)
	velocity := track.history.Last().Sub(prev)
	return track.currentCenter.Add(velocity)
}

// Update replaces box, extends history and recomputes motion statistics
func (track *Track) Update(detection Detection, frame int) {
	track.currentBBox = detection.BBox
	track.confidence = detection.Confidence
	track.currentCenter = detection.GetCenter()
	track.history.Add(track.currentCenter)
	track.stats = ComputeMotionStats(track.history.Points())
	track.missed = 0
	track.age++
	track.lastUpdateFrame = frame
}

// MarkMissed registers one more frame without a match. History is not extended
func (track *Track) MarkMissed() {
	track.missed++
	track.age++
}

// resetMissed forces track into matched state after recovery
func (track *Track) resetMissed() {
	track.missed = 0
}
