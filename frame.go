package lux

import "fmt"

// Frame is the canvas for one frame of a window. It starts cleared and
// Close submits everything drawn into it.
type Frame struct {
	*Canvas

	window *Window
	closed bool
}

// Close flushes the pending batch and presents the frame. Font atlas
// textures replaced during the frame are destroyed afterwards. It returns
// the first error the frame has seen. Closing twice returns the same error.
func (f *Frame) Close() error {
	if f.closed {
		return f.err
	}
	f.closed = true
	f.flush()
	if f.err == nil {
		if err := f.backend.Present(); err != nil {
			f.fail(fmt.Errorf("present: %w", err))
		}
	}
	f.fonts.sweep(f.backend)
	f.window.frame = nil
	return f.err
}

// Window returns the window the frame belongs to.
func (f *Frame) Window() *Window { return f.window }
