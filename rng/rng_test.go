package rng

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestSameSeedSameStream(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		if x, y := a.Float(), b.Float(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestDeriveIndependentStreams(t *testing.T) {
	a := Derive(7, "parents")
	b := Derive(7, "shuffle")
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float() == b.Float() {
			same++
		}
	}
	if same == 100 {
		t.Error("differently named streams produced identical sequences")
	}

	c := Derive(7, "parents")
	d := Derive(7, "parents")
	for i := 0; i < 100; i++ {
		if c.Float() != d.Float() {
			t.Fatal("same name and seed produced different sequences")
		}
	}
}

func TestIntInclusiveBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"unit", 0, 1},
		{"speed mod", 6, 14},
		{"degenerate", 3, 3},
		{"swapped", 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(1)
			lo, hi := tt.min, tt.max
			if hi < lo {
				lo, hi = hi, lo
			}
			seen := make(map[int]bool)
			for i := 0; i < 5000; i++ {
				v := s.Int(tt.min, tt.max)
				if v < lo || v > hi {
					t.Fatalf("Int(%d,%d) = %d out of range", tt.min, tt.max, v)
				}
				seen[v] = true
			}
			if len(seen) != hi-lo+1 {
				t.Errorf("saw %d distinct values, want %d", len(seen), hi-lo+1)
			}
		})
	}
}

func TestIntFollowsFloorFormula(t *testing.T) {
	a, b := New(9), New(9)
	for i := 0; i < 1000; i++ {
		got := a.Int(10, 55)
		want := int(math.Floor(b.Float()*46)) + 10
		if got != want {
			t.Fatalf("draw %d: Int = %d, want %d", i, got, want)
		}
	}
}

func TestFloatRange(t *testing.T) {
	s := New(3)
	for i := 0; i < 10000; i++ {
		v := s.Range(-0.5, 0.5)
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("Range(-0.5,0.5) = %v", v)
		}
	}
}

func TestBoolIsFair(t *testing.T) {
	s := New(11)
	const n = 20000
	trues := 0
	for i := 0; i < n; i++ {
		if s.Bool() {
			trues++
		}
	}
	obs := []float64{float64(trues), float64(n - trues)}
	exp := []float64{n / 2, n / 2}
	chi := stat.ChiSquare(obs, exp)
	p := distuv.ChiSquared{K: 1}.Survival(chi)
	if p < 0.001 {
		t.Errorf("Bool looks biased: %d/%d true, p=%v", trues, n, p)
	}
}

func TestWeightedEmpty(t *testing.T) {
	if _, ok := Weighted[int](New(1), nil); ok {
		t.Error("Weighted on empty slice returned ok")
	}
	if _, ok := Choice[int](New(1), nil); ok {
		t.Error("Choice on empty slice returned ok")
	}
}

func TestWeightedZeroWeightNeverChosen(t *testing.T) {
	s := New(5)
	items := []Item[string]{{"a", 0}, {"b", 1}}
	for i := 0; i < 1000; i++ {
		v, _ := Weighted(s, items)
		if v != "b" {
			t.Fatalf("picked zero-weight item %q", v)
		}
	}
}

func TestWeightedFrequencies(t *testing.T) {
	s := New(99)
	items := []Item[int]{{0, 0.1}, {1, 0.2}, {2, 0.3}, {3, 0.4}}
	const n = 40000
	counts := make([]float64, len(items))
	for i := 0; i < n; i++ {
		v, _ := Weighted(s, items)
		counts[v]++
	}

	exp := make([]float64, len(items))
	for i, it := range items {
		exp[i] = it.Weight * n
	}
	chi := stat.ChiSquare(counts, exp)
	p := distuv.ChiSquared{K: float64(len(items) - 1)}.Survival(chi)
	if p < 0.001 {
		t.Errorf("frequencies %v deviate from weights, p=%v", counts, p)
	}
}

func TestWeightedUnderflowReturnsLast(t *testing.T) {
	s := New(2)
	items := []Item[int]{{1, 0}, {2, 0}}
	for i := 0; i < 100; i++ {
		if v, _ := Weighted(s, items); v != 2 {
			t.Fatalf("got %d, want last item", v)
		}
	}
}

func TestShufflePermutes(t *testing.T) {
	s := New(8)
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	Shuffle(s, xs)
	seen := make(map[int]bool)
	for _, x := range xs {
		seen[x] = true
	}
	if len(seen) != 10 {
		t.Errorf("shuffle lost elements: %v", xs)
	}
}

func BenchmarkWeighted(b *testing.B) {
	s := New(1)
	items := make([]Item[int], 20)
	for i := range items {
		items[i] = Item[int]{i, 1.0 / 20}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Weighted(s, items)
	}
}
