package systems

import "testing"

func TestOverlaps(t *testing.T) {
	dino := Box{X: 25, Y: 99, W: 44, H: 47}

	tests := []struct {
		name  string
		other Box
		want  bool
	}{
		{"overlapping", Box{X: 60, Y: 113, W: 17, H: 35}, true},
		{"contained", Box{X: 30, Y: 100, W: 5, H: 5}, true},
		{"separated horizontally", Box{X: 100, Y: 113, W: 17, H: 35}, false},
		{"separated vertically", Box{X: 30, Y: 20, W: 46, H: 40}, false},
		{"overlap x only", Box{X: 30, Y: 0, W: 10, H: 10}, false},
		{"overlap y only", Box{X: 300, Y: 110, W: 10, H: 10}, false},
		{"touching right edge", Box{X: 69, Y: 113, W: 17, H: 35}, false},
		{"touching left edge", Box{X: 8, Y: 113, W: 17, H: 35}, false},
		{"touching top edge", Box{X: 30, Y: 59, W: 46, H: 40}, false},
		{"touching bottom edge", Box{X: 30, Y: 146, W: 10, H: 10}, false},
		{"one pixel past the edge", Box{X: 68.999, Y: 113, W: 17, H: 35}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(dino, tt.other); got != tt.want {
				t.Errorf("Overlaps(%+v, %+v) = %v, want %v", dino, tt.other, got, tt.want)
			}
			if got := Overlaps(tt.other, dino); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %+v", tt.other)
			}
		})
	}
}

func TestHitsAny(t *testing.T) {
	dino := Box{X: 0, Y: 0, W: 10, H: 10}
	miss := Box{X: 20, Y: 0, W: 5, H: 5}
	hit := Box{X: 5, Y: 5, W: 5, H: 5}

	if HitsAny(dino) {
		t.Error("no targets should not hit")
	}
	if HitsAny(dino, miss) {
		t.Error("separated target reported a hit")
	}
	if !HitsAny(dino, miss, hit) {
		t.Error("overlapping target not reported")
	}
}
