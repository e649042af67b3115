package mot

import (
	"github.com/cyclopcam/logs"
	"github.com/pkg/errors"
)

// TrackOutput is a single exported row for a currently matched track
type TrackOutput struct {
	BBox      BBox
	ID        int64
	Velocity  float64
	Curvature float64
	Jerk      float64
}

// AsSlice returns [x1, y1, x2, y2, id, velocity, curvature, jerk]
func (out TrackOutput) AsSlice() []float64 {
	return []float64{
		out.BBox.X1, out.BBox.Y1, out.BBox.X2, out.BBox.Y2,
		float64(out.ID),
		out.Velocity, out.Curvature, out.Jerk,
	}
}

// TrackerStats are lifetime counters of a tracker
type TrackerStats struct {
	Frames     int
	Spawned    int
	Recovered  int
	Suppressed int
	Removed    int
	Skipped    int
}

// QSortTracker is SORT-like multi-object tracker with motion penalties
// and short-term collapse memory suppressing identity flips.
// Not safe for concurrent use.
type QSortTracker struct {
	cfg       Config
	costModel CostModel
	assigner  Assigner
	log       logs.Log

	// Live tracks in creation order
	tracks     []*Track
	nextID     int64
	frameIndex int
	collapsed  *CollapseMemory
	stats      TrackerStats
}

// Option customizes QSortTracker
type Option func(*QSortTracker)

// WithLogger enables debug logging of track lifecycle events
func WithLogger(log logs.Log) Option {
	return func(tracker *QSortTracker) {
		tracker.log = log
	}
}

// WithAssigner overrides assignment solver selected by Config.Algorithm
func WithAssigner(assigner Assigner) Option {
	return func(tracker *QSortTracker) {
		tracker.assigner = assigner
	}
}

// WithCostWorkers overrides Config.CostWorkers
func WithCostWorkers(workers int) Option {
	return func(tracker *QSortTracker) {
		tracker.costModel.Workers = workers
	}
}

// NewQSortTrackerDefault creates tracker with DefaultConfig
func NewQSortTrackerDefault() *QSortTracker {
	tracker, _ := NewQSortTracker(DefaultConfig())
	return tracker
}

// NewQSortTracker creates new instance of QSortTracker
func NewQSortTracker(cfg Config, opts ...Option) (*QSortTracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tracker := &QSortTracker{
		cfg: cfg,
		costModel: CostModel{
			MaxDist: cfg.MaxDist,
			MinIoU:  cfg.MinIoU,
			Workers: cfg.CostWorkers,
		},
		assigner:  NewAssigner(cfg.Algorithm),
		tracks:    make([]*Track, 0),
		nextID:    1,
		collapsed: NewCollapseMemory(),
	}
	for _, opt := range opts {
		opt(tracker)
	}
	return tracker, nil
}

// Config returns tracker parameters
func (tracker *QSortTracker) Config() Config {
	return tracker.cfg
}

// FrameIndex returns index of the last processed frame (0 before first Update)
func (tracker *QSortTracker) FrameIndex() int {
	return tracker.frameIndex
}

// Stats returns lifetime counters
func (tracker *QSortTracker) Stats() TrackerStats {
	return tracker.stats
}

// Tracks returns all live tracks including currently missed ones
func (tracker *QSortTracker) Tracks() []*Track {
	out := make([]*Track, len(tracker.tracks))
	copy(out, tracker.tracks)
	return out
}

// GetTrack returns live track by identifier
func (tracker *QSortTracker) GetTrack(id int64) (*Track, bool) {
	for _, track := range tracker.tracks {
		if track.id == id {
			return track, true
		}
	}
	return nil, false
}

// CollapseMemory returns read access to recently lost tracks
func (tracker *QSortTracker) CollapseMemory() *CollapseMemory {
	return tracker.collapsed
}

// Reset drops all state. Identifiers restart from 1
func (tracker *QSortTracker) Reset() {
	tracker.tracks = make([]*Track, 0)
	tracker.nextID = 1
	tracker.frameIndex = 0
	tracker.collapsed = NewCollapseMemory()
	tracker.stats = TrackerStats{}
}

// UpdateRaw is Update for [x1, y1, x2, y2, conf] rows.
// Returns [x1, y1, x2, y2, id, v, curv, j] rows.
func (tracker *QSortTracker) UpdateRaw(raw [][]float64) ([][]float64, error) {
	detections := make([]Detection, len(raw))
	for i := range raw {
		detection, err := DetectionFromSlice(raw[i])
		if err != nil {
			return nil, errors.Wrapf(err, "detection %d", i)
		}
		detections[i] = detection
	}
	outputs := tracker.Update(detections)
	rows := make([][]float64, len(outputs))
	for i := range outputs {
		rows[i] = outputs[i].AsSlice()
	}
	return rows, nil
}

// Update processes detections of the next frame and returns currently matched tracks.
// Detections with non-finite values or inverted corners are skipped.
func (tracker *QSortTracker) Update(detections []Detection) []TrackOutput {
	tracker.frameIndex++
	tracker.stats.Frames++
	frame := tracker.frameIndex
	dets := tracker.filterDetections(detections)

	// No existing tracks: every detection starts a new one
	if len(tracker.tracks) == 0 {
		for i := range dets {
			tracker.spawn(dets[i])
		}
		return tracker.export()
	}

	// No detections: everything is missed
	if len(dets) == 0 {
		for _, track := range tracker.tracks {
			tracker.markMissed(track)
		}
		tracker.cleanup()
		return []TrackOutput{}
	}

	costMatrix, err := tracker.costModel.BuildCostMatrix(tracker.tracks, dets)
	if err != nil {
		// Unreachable for filtered detections. The frame counts as empty
		if tracker.log != nil {
			tracker.log.Errorf("Frame %d: can't build cost matrix: %v", frame, err)
		}
		for _, track := range tracker.tracks {
			tracker.markMissed(track)
		}
		tracker.cleanup()
		return []TrackOutput{}
	}
	matches := tracker.assigner.Assign(costMatrix)

	assignedTracks := make([]bool, len(tracker.tracks))
	assignedDetections := make([]bool, len(dets))
	for _, match := range matches {
		if Forbidden(costMatrix.At(match.Row, match.Col)) {
			continue
		}
		tracker.tracks[match.Row].Update(dets[match.Col], frame)
		assignedTracks[match.Row] = true
		assignedDetections[match.Col] = true
	}

	for i, track := range tracker.tracks {
		if !assignedTracks[i] {
			tracker.markMissed(track)
		}
	}

	for j := range dets {
		if assignedDetections[j] {
			continue
		}
		center := dets[j].GetCenter()
		if trackID, ok := tracker.collapsed.FindNearby(center, frame, tracker.cfg.FreezeWindow, tracker.cfg.MaxDist); ok {
			tracker.recoverTrack(trackID, dets[j])
			continue
		}
		if tracker.collapsed.Frozen(frame) {
			tracker.stats.Suppressed++
			tracker.debugf("Frame %d: suppressed new track at %.1f,%.1f (frozen until %d)", frame, center.X, center.Y, tracker.collapsed.NoNewIDUntil())
			continue
		}
		tracker.spawn(dets[j])
	}

	tracker.cleanup()
	return tracker.export()
}

func (tracker *QSortTracker) filterDetections(detections []Detection) []Detection {
	dets := make([]Detection, 0, len(detections))
	for i := range detections {
		if !detections[i].Valid() {
			tracker.stats.Skipped++
			if tracker.log != nil {
				tracker.log.Warnf("Frame %d: skipping malformed detection %d: %+v", tracker.frameIndex, i, detections[i])
			}
			continue
		}
		dets = append(dets, detections[i])
	}
	return dets
}

func (tracker *QSortTracker) spawn(detection Detection) {
	track := NewTrackWithHistory(tracker.nextID, detection, tracker.frameIndex, tracker.cfg.MaxHistory)
	tracker.nextID++
	tracker.tracks = append(tracker.tracks, track)
	tracker.stats.Spawned++
	tracker.debugf("Frame %d: new track %d at %.1f,%.1f", tracker.frameIndex, track.id, track.currentCenter.X, track.currentCenter.Y)
}

// markMissed ages track and remembers its position on the first miss
func (tracker *QSortTracker) markMissed(track *Track) {
	track.MarkMissed()
	if track.missed == 1 {
		tracker.collapsed.RecordLoss(track.id, track.currentCenter, tracker.frameIndex, tracker.cfg.FreezeWindow)
		tracker.debugf("Frame %d: lost track %d at %.1f,%.1f", tracker.frameIndex, track.id, track.currentCenter.X, track.currentCenter.Y)
	}
}

// recoverTrack re-attaches detection to a recently lost track.
// If the track has already been removed the detection is dropped.
func (tracker *QSortTracker) recoverTrack(trackID int64, detection Detection) {
	track, ok := tracker.GetTrack(trackID)
	if !ok {
		return
	}
	track.Update(detection, tracker.frameIndex)
	track.resetMissed()
	tracker.stats.Recovered++
	tracker.debugf("Frame %d: recovered track %d", tracker.frameIndex, trackID)
}

func (tracker *QSortTracker) cleanup() {
	kept := tracker.tracks[:0]
	for _, track := range tracker.tracks {
		if track.missed <= tracker.cfg.MaxMissed {
			kept = append(kept, track)
			continue
		}
		tracker.stats.Removed++
		tracker.debugf("Frame %d: removed track %d after %d missed frames", tracker.frameIndex, track.id, track.missed)
	}
	for i := len(kept); i < len(tracker.tracks); i++ {
		tracker.tracks[i] = nil
	}
	tracker.tracks = kept
	tracker.collapsed.Prune(tracker.frameIndex, tracker.cfg.FreezeWindow)
}

func (tracker *QSortTracker) export() []TrackOutput {
	outputs := make([]TrackOutput, 0, len(tracker.tracks))
	for _, track := range tracker.tracks {
		if track.missed != 0 {
			continue
		}
		outputs = append(outputs, TrackOutput{
			BBox:      track.currentBBox,
			ID:        track.id,
			Velocity:  track.stats.Velocity,
			Curvature: track.stats.Curvature,
			Jerk:      track.stats.Jerk,
		})
	}
	return outputs
}

func (tracker *QSortTracker) debugf(format string, args ...interface{}) {
	if tracker.log != nil {
		tracker.log.Debugf(format, args...)
	}
}
