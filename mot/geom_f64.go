package mot

import (
	"image"
	"math"
)

// BBox is an axis-aligned bounding box given by its top-left and bottom-right corners.
type BBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

func NewBBoxFrom(rect image.Rectangle) BBox {
	return BBox{
		X1: float64(rect.Min.X),
		Y1: float64(rect.Min.Y),
		X2: float64(rect.Max.X),
		Y2: float64(rect.Max.Y),
	}
}

// Center returns middle point of the box
func (b BBox) Center() Point {
	return Point{
		X: (b.X1 + b.X2) / 2.0,
		Y: (b.Y1 + b.Y2) / 2.0,
	}
}

// Width returns horizontal extent. Could be negative for malformed boxes
func (b BBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns vertical extent. Could be negative for malformed boxes
func (b BBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Area returns box area. Negative extents are clamped to zero
func (b BBox) Area() float64 {
	return maxFloat64(0, b.Width()) * maxFloat64(0, b.Height())
}

// Valid reports whether every coordinate is finite and corners are ordered
func (b BBox) Valid() bool {
	for _, v := range [4]float64{b.X1, b.Y1, b.X2, b.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.X2 >= b.X1 && b.Y2 >= b.Y1
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}

// Sub returns p - other as a displacement vector
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Add returns p + other
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Norm returns length of p treated as a vector
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// CenterDistance returns Euclidean distance between two points
func CenterDistance(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}
