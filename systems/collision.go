package systems

// Box is an axis-aligned rectangle. X, Y is the top-left corner.
type Box struct {
	X, Y, W, H float64
}

// Overlaps reports whether a and b overlap on both axes. Boxes that only
// touch along an edge do not overlap.
func Overlaps(a, b Box) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W &&
		a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// HitsAny reports whether box overlaps any of the targets.
func HitsAny(box Box, targets ...Box) bool {
	for _, t := range targets {
		if Overlaps(box, t) {
			return true
		}
	}
	return false
}
