package lux

// pixelCenter moves integer pixel coordinates onto pixel centers.
var pixelCenter = Translation(0.5, 0.5)

// DrawPoint draws a one pixel point at (x, y). The point follows the
// current transform, so it is not necessarily a single screen pixel.
func (c *Canvas) DrawPoint(x, y float32, col Color) {
	v := [1]ColorVertex{{Pos: [2]float32{x, y}, Color: col.Array()}}
	c.DrawColored(Points, v[:], nil, nil)
}

// DrawPixels draws each vertex as a one pixel point. Integer positions
// land on the center of the pixel they name.
func (c *Canvas) DrawPixels(pixels []ColorVertex) {
	m := pixelCenter
	c.DrawColored(Points, pixels, nil, &m)
}
