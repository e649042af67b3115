package mot

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

const (
	// ForbiddenCost marks track/detection pair which must never be matched
	ForbiddenCost = 1_000_000.0

	iouCostScale      = 100.0
	distanceCostScale = 0.4
	velocityPenalty   = 0.08
	jerkPenalty       = 0.05
)

// CostModel scores how well a detection continues a track. Lower is better.
type CostModel struct {
	// Maximum distance between predicted track center and detection center
	MaxDist float64
	// Minimum IoU between current track box and detection box
	MinIoU float64
	// Number of goroutines used to fill matrix rows. Values below 2 mean sequential
	Workers int
}

// Cost returns matching cost for a single pair or ForbiddenCost when gating rejects it
func (cm CostModel) Cost(track *Track, detection Detection) float64 {
	predicted := track.Predict()
	d := CenterDistance(detection.GetCenter(), predicted)
	if d > cm.MaxDist {
		return ForbiddenCost
	}
	iouVal := IoU(track.GetBBox(), detection.BBox)
	if iouVal < cm.MinIoU {
		return ForbiddenCost
	}
	stats := track.GetStats()
	iouCost := (1.0 - iouVal) * iouCostScale
	distCost := d * distanceCostScale
	vPen := math.Abs(stats.Velocity) * velocityPenalty
	jPen := math.Abs(stats.Jerk) * jerkPenalty
	return iouCost + distCost + vPen + jPen
}

// BuildCostMatrix creates |tracks| x |detections| cost matrix.
// Returns nil when either side is empty since gonum has no zero-sized dense matrix.
// Fails with ErrNonFiniteCost when some pair scores NaN or infinity, which happens
// only for tracks or detections carrying non-finite coordinates.
func (cm CostModel) BuildCostMatrix(tracks []*Track, detections []Detection) (*mat.Dense, error) {
	if len(tracks) == 0 || len(detections) == 0 {
		return nil, nil
	}
	costMatrix := mat.NewDense(len(tracks), len(detections), nil)
	fillRow := func(i int) error {
		for j := range detections {
			cost := cm.Cost(tracks[i], detections[j])
			if math.IsNaN(cost) || math.IsInf(cost, 0) {
				return errors.Wrapf(ErrNonFiniteCost, "track %d, detection %d", tracks[i].GetID(), j)
			}
			costMatrix.Set(i, j, cost)
		}
		return nil
	}
	if cm.Workers < 2 || len(tracks) < 2 {
		for i := range tracks {
			if err := fillRow(i); err != nil {
				return nil, err
			}
		}
		return costMatrix, nil
	}
	// Rows are disjoint so concurrent Set calls never touch same element
	var g errgroup.Group
	g.SetLimit(cm.Workers)
	for i := range tracks {
		g.Go(func() error {
			return fillRow(i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return costMatrix, nil
}

// Forbidden reports whether cost is the gating sentinel
func Forbidden(cost float64) bool {
	return cost >= ForbiddenCost
}
