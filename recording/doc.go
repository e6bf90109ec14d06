// Package recording provides a render.Backend that records draw calls.
//
// The recording backend draws nothing. It captures every call it receives
// as a typed command structure, which makes the output of the lux batcher
// inspectable in tests and lets a frame be replayed to any other backend.
//
// Design follows Cairo's approach of typed command structs for inspectability
// and debuggability, rather than a binary serialization format.
//
// # Architecture
//
// Commands capture every backend call:
//   - Surface commands (Resize, Clear, ClearStencil, Present)
//   - Drawing commands (DrawColored, DrawTextured)
//   - Texture commands (NewTexture, NewRenderTexture, DestroyTexture)
//
// Uploaded images are stored in a ResourcePool and referenced by ImageRef.
// Vertex and index slices are copied, so callers may reuse their buffers.
//
// # Example
//
//	rec := recording.NewRecorder(800, 600)
//	win, _ := lux.NewWindow(lux.WithBackendInstance(rec))
//	// ... draw a frame ...
//	r := rec.FinishRecording()
//
//	// Replay to another backend
//	sw, _ := software.New(800, 600)
//	err := r.Playback(sw)
//
// Importing the package registers the backend under the name "recording".
package recording
