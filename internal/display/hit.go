package display

// rect is a screen region in cells, used to hit-test mouse presses.
type rect struct {
	x, y, w, h int
}

func (r rect) empty() bool { return r.w <= 0 || r.h <= 0 }

func (r rect) contains(x, y int) bool {
	return !r.empty() && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// row returns the zero-based row of y inside r, or -1.
func (r rect) row(x, y int) int {
	if !r.contains(x, y) {
		return -1
	}
	return y - r.y
}
