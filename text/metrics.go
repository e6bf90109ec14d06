package text

// Metrics holds font metrics at a specific size, in pixels.
type Metrics struct {
	// Ascent is the distance from the top of a line to the baseline.
	Ascent float32

	// Descent is the distance from the baseline to the bottom of the font
	// (positive, below baseline).
	Descent float32

	// Height is the recommended distance between consecutive baselines.
	Height float32
}

// LineHeight returns the distance between consecutive lines.
// Fonts without a recommended height fall back to ascent plus descent.
func (m Metrics) LineHeight() float32 {
	if m.Height > 0 {
		return m.Height
	}
	return m.Ascent + m.Descent
}
