package mot

import (
	"image"
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestCenterDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	correnctAnswer := 181.57367
	answer := CenterDistance(p1, p2)
	if math.Abs(answer-correnctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correnctAnswer)
	}
}

func TestBBoxCenter(t *testing.T) {
	bbox := NewBBox(10, 20, 40, 60)
	expected := Point{X: 25, Y: 40}
	if bbox.Center() != expected {
		t.Errorf("Expected center %v, got %v", expected, bbox.Center())
	}
	if bbox.Width() != 30 || bbox.Height() != 40 {
		t.Errorf("Expected 30x40, got %vx%v", bbox.Width(), bbox.Height())
	}
	if bbox.Area() != 1200 {
		t.Errorf("Expected area 1200, got %v", bbox.Area())
	}
}

func TestBBoxFromImageRectangle(t *testing.T) {
	bbox := NewBBoxFrom(image.Rect(1, 2, 11, 22))
	expected := BBox{X1: 1, Y1: 2, X2: 11, Y2: 22}
	if bbox != expected {
		t.Errorf("Expected %v, got %v", expected, bbox)
	}
}

func TestBBoxValid(t *testing.T) {
	cases := []struct {
		bbox  BBox
		valid bool
	}{
		{NewBBox(0, 0, 10, 10), true},
		{NewBBox(5, 5, 5, 5), true},
		{NewBBox(10, 0, 0, 10), false},
		{NewBBox(0, 10, 10, 0), false},
		{NewBBox(math.NaN(), 0, 10, 10), false},
		{NewBBox(0, 0, math.Inf(1), 10), false},
	}
	for i, c := range cases {
		if c.bbox.Valid() != c.valid {
			t.Errorf("Case %d: expected valid=%v for %v", i, c.valid, c.bbox)
		}
	}
}

func TestIoU(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)

	same := IoU(a, a)
	if math.Abs(same-1.0) > eps {
		t.Errorf("IoU of identical boxes should be ~1, got %v", same)
	}

	half := IoU(a, NewBBox(5, 0, 15, 10))
	if math.Abs(half-1.0/3.0) > eps {
		t.Errorf("Expected IoU 1/3, got %v", half)
	}

	disjoint := IoU(a, NewBBox(20, 20, 30, 30))
	if disjoint != 0 {
		t.Errorf("Disjoint boxes should have IoU 0, got %v", disjoint)
	}

	zero := IoU(NewBBox(3, 3, 3, 3), NewBBox(3, 3, 3, 3))
	if zero != 0 {
		t.Errorf("Zero-area boxes should have IoU 0, got %v", zero)
	}
}
