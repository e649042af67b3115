package mot

const (
	// iouEps keeps the union strictly positive so zero-area boxes give IoU 0
	iouEps = 1e-6
)

// IoU calculates Intersection over Union between two boxes.
// Negative extents count as zero area.
func IoU(b1, b2 BBox) float64 {
	xA := maxFloat64(b1.X1, b2.X1)
	yA := maxFloat64(b1.Y1, b2.Y1)
	xB := minFloat64(b1.X2, b2.X2)
	yB := minFloat64(b1.Y2, b2.Y2)

	interArea := maxFloat64(0, xB-xA) * maxFloat64(0, yB-yA)
	union := b1.Area() + b2.Area() - interArea + iouEps
	return interArea / union
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
