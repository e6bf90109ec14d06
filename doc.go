// Package lux is an immediate-mode 2D drawing library on top of a retained
// GPU backend.
//
// # Overview
//
// Programs issue drawing commands every frame: rectangles, ellipses,
// sprites, lines, points and text. lux keeps a transform and a color as
// state, and batches the resulting geometry into as few backend draw calls
// as it can. Backends are pluggable: a wgpu hal renderer (package gpu), a
// CPU rasterizer (backend/software) and a recorder for tests
// (recording).
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/lux"
//	    _ "github.com/gogpu/lux/backend/software"
//	)
//
//	w, err := lux.NewWindow(lux.WithSize(640, 480))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	f, _ := w.Frame()
//	f.Rect(10, 10, 100, 50).Color(lux.Red).Fill()
//	f.Circle(200, 200, 80).Fill()
//	f.DrawText("hello", 10, 100)
//	if err := f.Close(); err != nil {
//	    log.Fatal(err)
//	}
//	w.SavePNG("frame.png")
//
// # Batching
//
// Every shape ends in Canvas.DrawColored or Canvas.DrawTextured. Geometry
// is transformed by the current matrix when it is added, so consecutive
// draws of the same list primitive (Points, LinesList, TrianglesList) are
// concatenated into one draw call. Textured draws also need the same
// texture and color multiplier. Any other draw, a scissor or stencil
// change, Clear and Flush submit the pending batch.
//
// # Transforms
//
// The transform of a canvas starts as the screen basis, which maps pixels
// with a top-left origin onto the target. Translate, Scale, Shear, Rotate
// and RotateAround right-multiply it. The With* variants restore the
// previous matrix when their function returns:
//
//	f.WithRotateAround(100, 100, math.Pi/4, func() {
//	    f.Square(50, 50, 100).Fill()
//	})
//
// # Errors
//
// Drawing methods do not return errors. The first backend error is kept,
// later submissions are dropped, and the error is returned by Flush,
// Canvas.Err and Frame.Close.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Positive angles turn clockwise on screen
package lux
