package mot

// CollapseEntry remembers where and when a track was first lost
type CollapseEntry struct {
	TrackID int64
	Center  Point
	Frame   int
}

// CollapseMemory is a short log of recently lost tracks plus a single
// watermark frame up to which no new identities are allowed.
// The watermark is tracker-wide, not spatial.
type CollapseMemory struct {
	entries      []CollapseEntry
	noNewIDUntil int
}

// NewCollapseMemory creates empty memory with no active freeze
func NewCollapseMemory() *CollapseMemory {
	return &CollapseMemory{
		entries:      make([]CollapseEntry, 0),
		noNewIDUntil: -1,
	}
}

// RecordLoss appends entry for the track and raises the freeze watermark to frame+freezeWindow.
// Entries for the same id are not deduplicated.
func (cm *CollapseMemory) RecordLoss(trackID int64, center Point, frame, freezeWindow int) {
	cm.entries = append(cm.entries, CollapseEntry{
		TrackID: trackID,
		Center:  center,
		Frame:   frame,
	})
	if deadline := frame + freezeWindow; deadline > cm.noNewIDUntil {
		cm.noNewIDUntil = deadline
	}
}

// FindNearby returns id of the first entry (insertion order) inside the freeze window
// whose center lies strictly closer than maxDist to the query center.
func (cm *CollapseMemory) FindNearby(center Point, currentFrame, freezeWindow int, maxDist float64) (int64, bool) {
	for _, entry := range cm.entries {
		if currentFrame-entry.Frame > freezeWindow {
			continue
		}
		if CenterDistance(center, entry.Center) < maxDist {
			return entry.TrackID, true
		}
	}
	return 0, false
}

// Prune drops entries older than freezeWindow frames
func (cm *CollapseMemory) Prune(currentFrame, freezeWindow int) {
	kept := cm.entries[:0]
	for _, entry := range cm.entries {
		if currentFrame-entry.Frame <= freezeWindow {
			kept = append(kept, entry)
		}
	}
	cm.entries = kept
}

// Frozen reports whether spawning new identities is suppressed at frame
func (cm *CollapseMemory) Frozen(frame int) bool {
	return frame <= cm.noNewIDUntil
}

// NoNewIDUntil returns current freeze watermark (-1 if never set)
func (cm *CollapseMemory) NoNewIDUntil() int {
	return cm.noNewIDUntil
}

// Len returns number of remembered entries
func (cm *CollapseMemory) Len() int {
	return len(cm.entries)
}

// Entries returns copy of remembered entries in insertion order
func (cm *CollapseMemory) Entries() []CollapseEntry {
	out := make([]CollapseEntry, len(cm.entries))
	copy(out, cm.entries)
	return out
}
