package mot

import (
	"testing"
)

func TestNewTrack(t *testing.T) {
	detection := NewDetection(10, 20, 40, 60, 0.8)
	track := NewTrack(7, detection, 3)

	if track.GetID() != 7 {
		t.Errorf("Expected id 7, got %d", track.GetID())
	}
	if track.GetBBox() != detection.BBox {
		t.Errorf("Expected bbox %v, got %v", detection.BBox, track.GetBBox())
	}
	if track.GetConfidence() != 0.8 {
		t.Errorf("Expected confidence 0.8, got %v", track.GetConfidence())
	}
	if track.GetAge() != 1 || track.GetMissed() != 0 {
		t.Errorf("Expected age 1 and missed 0, got %d and %d", track.GetAge(), track.GetMissed())
	}
	if track.GetLastUpdateFrame() != 3 {
		t.Errorf("Expected last update frame 3, got %d", track.GetLastUpdateFrame())
	}
	if len(track.History()) != 1 {
		t.Errorf("Expected single point history, got %d", len(track.History()))
	}
	if track.GetStats() != (MotionStats{}) {
		t.Errorf("Expected zero stats, got %+v", track.GetStats())
	}
	if track.Predict() != (Point{X: 25, Y: 40}) {
		t.Errorf("Prediction without motion should equal center, got %v", track.Predict())
	}
}

func TestTrackPredictLinear(t *testing.T) {
	track := NewTrack(1, NewDetection(0, 0, 10, 10, 1), 1)
	track.Update(NewDetection(4, 2, 14, 12, 1), 2)

	predicted := track.Predict()
	expected := Point{X: 13, Y: 9}
	if predicted != expected {
		t.Errorf("Expected prediction %v, got %v", expected, predicted)
	}
}

func TestTrackUpdate(t *testing.T) {
	track := NewTrack(1, NewDetection(0, 0, 10, 10, 0.5), 1)
	track.MarkMissed()
	track.MarkMissed()

	track.Update(NewDetection(1, 0, 11, 10, 0.9), 4)
	if track.GetMissed() != 0 {
		t.Errorf("Update should reset missed, got %d", track.GetMissed())
	}
	if track.GetAge() != 4 {
		t.Errorf("Expected age 4, got %d", track.GetAge())
	}
	if track.GetLastUpdateFrame() != 4 {
		t.Errorf("Expected last update frame 4, got %d", track.GetLastUpdateFrame())
	}
	if track.GetConfidence() != 0.9 {
		t.Errorf("Expected confidence 0.9, got %v", track.GetConfidence())
	}
	if len(track.History()) != 2 {
		t.Errorf("Expected 2 points in history, got %d", len(track.History()))
	}

	track.Update(NewDetection(2, 0, 12, 10, 0.9), 5)
	stats := track.GetStats()
	if stats.Velocity != 1 {
		t.Errorf("Expected velocity 1 after three updates, got %v", stats.Velocity)
	}
}

func TestTrackMarkMissedKeepsHistory(t *testing.T) {
	track := NewTrack(1, NewDetection(0, 0, 10, 10, 1), 1)
	track.Update(NewDetection(1, 0, 11, 10, 1), 2)
	bbox := track.GetBBox()

	track.MarkMissed()
	if track.GetMissed() != 1 || track.GetAge() != 3 {
		t.Errorf("Expected missed 1 and age 3, got %d and %d", track.GetMissed(), track.GetAge())
	}
	if len(track.History()) != 2 {
		t.Errorf("Missed frame must not extend history, got %d points", len(track.History()))
	}
	if track.GetBBox() != bbox || track.GetLastUpdateFrame() != 2 {
		t.Error("Missed frame must not touch box or last update frame")
	}
}

func TestTrackHistoryWindow(t *testing.T) {
	track := NewTrack(1, NewDetection(0, 0, 10, 10, 1), 1)
	// Centers x = 5, 6, ..., 25
	for i := 1; i <= 20; i++ {
		x := float64(i)
		track.Update(NewDetection(x, 0, x+10, 10, 1), i+1)
	}
	history := track.History()
	if len(history) != DefaultMaxHistory {
		t.Fatalf("Expected %d points, got %d", DefaultMaxHistory, len(history))
	}
	if history[0].X != 11 {
		t.Errorf("Expected oldest center x=11, got %v", history[0].X)
	}
	if history[len(history)-1].X != 25 {
		t.Errorf("Expected newest center x=25, got %v", history[len(history)-1].X)
	}
	for i := 1; i < len(history); i++ {
		if history[i].X-history[i-1].X != 1 {
			t.Errorf("History is not ordered oldest first at %d: %v", i, history)
			break
		}
	}
}

func TestTrackCustomHistoryWindow(t *testing.T) {
	track := NewTrackWithHistory(1, NewDetection(0, 0, 10, 10, 1), 1, 3)
	for i := 1; i <= 5; i++ {
		x := float64(i)
		track.Update(NewDetection(x, 0, x+10, 10, 1), i+1)
	}
	history := track.History()
	if len(history) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(history))
	}
	if history[0].X != 8 || history[2].X != 10 {
		t.Errorf("Unexpected window %v", history)
	}
}
