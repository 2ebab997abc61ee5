package spiral

// Point is a 2D curve sample.
type Point struct {
	X float64
	Y float64
}

// quarterTurn is the phase offset between the x and y oscillations. It is
// what turns the sum into an orbit instead of a flat line.
const quarterTurn = 0.25

// At evaluates the curve at parameter t. Every retained component adds one
// sine term per axis, with the y axis a quarter turn ahead. The result is
// unscaled; its magnitude grows with the sum of component powers and the
// caller owns fitting it to a display.
//
// This runs numpoints+1 times per frame with up to Complexity components
// each, so it stays allocation free and leans on the table sine.
func (m *Model) At(t float64) Point {
	var p Point

	for _, c := range m.comps {
		p.X += Sin(t*c.Ratio) * c.Power
		p.Y += Sin(t*c.Ratio+quarterTurn) * c.Power
	}

	return p
}
