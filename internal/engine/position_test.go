package engine

import "testing"

func TestRectangleOverlaps(t *testing.T) {
	base := Rectangle{
		TopLeft:     Position{X: 2, Y: 5},
		BottomRight: Position{X: 4, Y: 6},
	}

	tests := []struct {
		name  string
		other Rectangle
		want  bool
	}{
		{"same rectangle", base, true},
		{
			"adjacent to the right",
			Rectangle{TopLeft: Position{X: 5, Y: 5}, BottomRight: Position{X: 7, Y: 6}},
			false,
		},
		{
			"shares one corner cell",
			Rectangle{TopLeft: Position{X: 4, Y: 6}, BottomRight: Position{X: 6, Y: 8}},
			true,
		},
		{
			"fully above",
			Rectangle{TopLeft: Position{X: 2, Y: 0}, BottomRight: Position{X: 4, Y: 4}},
			false,
		},
		{
			"contained",
			Rectangle{TopLeft: Position{X: 3, Y: 5}, BottomRight: Position{X: 3, Y: 5}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectangleIntersection(t *testing.T) {
	a := Rectangle{TopLeft: Position{X: 2, Y: 5}, BottomRight: Position{X: 4, Y: 6}}
	b := Rectangle{TopLeft: Position{X: 4, Y: 5}, BottomRight: Position{X: 6, Y: 6}}

	got := a.Intersection(b)
	want := Rectangle{TopLeft: Position{X: 4, Y: 5}, BottomRight: Position{X: 4, Y: 6}}
	if got != want {
		t.Errorf("Intersection = %+v, want %+v", got, want)
	}
}
