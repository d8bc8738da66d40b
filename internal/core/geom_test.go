package core

import (
	"math"
	"testing"
)

func TestHeadingCardinalDirections(t *testing.T) {
	origin := Cell{I: 2, J: 2}
	tests := []struct {
		to   Cell
		want float64
	}{
		{Cell{I: 2, J: 3}, 0},   // +J
		{Cell{I: 1, J: 2}, 90},  // -I
		{Cell{I: 2, J: 1}, 180}, // -J
		{Cell{I: 3, J: 2}, 270}, // +I
	}

	for _, tt := range tests {
		got := Heading(origin, tt.to)
		if math.Abs(got-tt.want) > Epsilon {
			t.Errorf("Heading(%+v, %+v) = %v, want %v", origin, tt.to, got, tt.want)
		}
	}
}

func TestHeadingIsInRange(t *testing.T) {
	origin := Cell{I: 5, J: 5}
	for di := -2; di <= 2; di++ {
		for dj := -2; dj <= 2; dj++ {
			to := Cell{I: origin.I + di, J: origin.J + dj}
			h := Heading(origin, to)
			if h < 0 || h >= 360 {
				t.Errorf("Heading(%+v, %+v) = %v, out of [0,360)", origin, to, h)
			}
		}
	}
}

func TestHeadingDeltaWrapsAround(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 90, 90},
		{90, 0, 90},
		{10, 350, 20},
		{0, 180, 180},
		{270, 45, 135},
	}
	for _, tt := range tests {
		if got := HeadingDelta(tt.a, tt.b); math.Abs(got-tt.want) > Epsilon {
			t.Errorf("HeadingDelta(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEuclideanCells(t *testing.T) {
	if d := EuclideanCells(Cell{I: 0, J: 0}, Cell{I: 3, J: 4}); math.Abs(d-5) > Epsilon {
		t.Errorf("expected distance 5, got %v", d)
	}
}

func TestPointToSegmentDistance(t *testing.T) {
	a := Point{I: 0, J: 0}
	b := Point{I: 0, J: 4}

	// Perpendicular foot inside the segment.
	if d := PointToSegmentDistance(Point{I: 2, J: 2}, a, b); math.Abs(d-2) > Epsilon {
		t.Errorf("expected distance 2, got %v", d)
	}
	// Past the far endpoint: clamps to b.
	if d := PointToSegmentDistance(Point{I: 0, J: 7}, a, b); math.Abs(d-3) > Epsilon {
		t.Errorf("expected distance 3, got %v", d)
	}
	// Degenerate segment.
	if d := PointToSegmentDistance(Point{I: 1, J: 1}, a, a); math.Abs(d-math.Sqrt2) > Epsilon {
		t.Errorf("expected distance sqrt(2), got %v", d)
	}
}

func TestSectionPositionAtClamps(t *testing.T) {
	s := Section{IStart: 0, JStart: 0, IEnd: 4, JEnd: 0, TStart: 2, TEnd: 6}

	if p := s.PositionAt(4); math.Abs(p.I-2) > Epsilon {
		t.Errorf("expected midpoint at t=4, got %+v", p)
	}
	if p := s.PositionAt(0); p != s.From() {
		t.Errorf("expected clamp to the start before TStart, got %+v", p)
	}
	if p := s.PositionAt(10); p != s.To() {
		t.Errorf("expected clamp to the end after TEnd, got %+v", p)
	}
}
