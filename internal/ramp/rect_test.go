package ramp

import (
	"image"
	"testing"
)

func TestIntersection(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Rect
		want      Rect
		wantEmpty bool
	}{
		{
			name: "overlapping",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 5, Y: 5, Width: 10, Height: 10},
			want: Rect{X: 5, Y: 5, Width: 5, Height: 5},
		},
		{
			name: "contained",
			a:    Rect{X: 0, Y: 0, Width: 100, Height: 50},
			b:    Rect{X: 10, Y: 10, Width: 20, Height: 20},
			want: Rect{X: 10, Y: 10, Width: 20, Height: 20},
		},
		{
			name: "fractional",
			a:    Rect{X: -12.5, Y: 0, Width: 40, Height: 40},
			b:    Rect{X: 0, Y: 0, Width: 100, Height: 30},
			want: Rect{X: 0, Y: 0, Width: 27.5, Height: 30},
		},
		{
			name:      "touching edges",
			a:         Rect{X: 0, Y: 0, Width: 1, Height: 1},
			b:         Rect{X: 1, Y: 0, Width: 1, Height: 1},
			want:      Rect{X: 1, Y: 0, Width: 0, Height: 1},
			wantEmpty: true,
		},
		{
			name:      "disjoint unit rects",
			a:         Rect{X: 0, Y: 0, Width: 1, Height: 1},
			b:         Rect{X: 3, Y: 3, Width: 1, Height: 1},
			want:      Rect{X: 3, Y: 3, Width: -2, Height: -2},
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersection(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Intersection(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got.IsEmpty() != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got.IsEmpty(), tt.wantEmpty)
			}
		})
	}
}

// Disjoint intersections have negative extents; they must count as empty
// so the tiling pass never blits them.
func TestIsEmptyTreatsNegativeExtentAsEmpty(t *testing.T) {
	for _, r := range []Rect{
		{Width: -1, Height: 5},
		{Width: 5, Height: -0.001},
		{Width: 0, Height: 5},
	} {
		if !r.IsEmpty() {
			t.Errorf("%v.IsEmpty() = false, want true", r)
		}
	}
	if (Rect{Width: 0.001, Height: 0.001}).IsEmpty() {
		t.Error("tiny positive rect reported empty")
	}
}

func TestRectImage(t *testing.T) {
	r := Rect{X: 1.5, Y: -0.5, Width: 2, Height: 1}
	want := image.Rect(1, -1, 4, 1)
	if got := r.Image(); got != want {
		t.Errorf("Image() = %v, want %v", got, want)
	}
}
