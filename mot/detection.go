package mot

import (
	"math"

	"github.com/pkg/errors"
)

// Detection is a single observed box for one frame. It carries no identity.
type Detection struct {
	BBox       BBox
	Confidence float64
}

// NewDetection creates detection from corner coordinates and score
func NewDetection(x1, y1, x2, y2, confidence float64) Detection {
	return Detection{
		BBox:       NewBBox(x1, y1, x2, y2),
		Confidence: confidence,
	}
}

// DetectionFromSlice parses [x1, y1, x2, y2, confidence]
func DetectionFromSlice(raw []float64) (Detection, error) {
	if len(raw) != 5 {
		return Detection{}, errors.Wrapf(ErrBadDetection, "expected 5 values, got %d", len(raw))
	}
	return NewDetection(raw[0], raw[1], raw[2], raw[3], raw[4]), nil
}

// GetCenter returns center of detection's box
func (d Detection) GetCenter() Point {
	return d.BBox.Center()
}

// Valid reports whether detection can be safely consumed by tracker
func (d Detection) Valid() bool {
	if math.IsNaN(d.Confidence) || math.IsInf(d.Confidence, 0) {
		return false
	}
	return d.BBox.Valid()
}
