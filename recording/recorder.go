package recording

import (
	"fmt"
	"image"

	"github.com/gogpu/lux/backend"
	"github.com/gogpu/lux/render"
)

func init() {
	backend.Register(backend.NameRecording, func(cfg backend.Config) (render.Backend, error) {
		return NewRecorder(cfg.Width, cfg.Height), nil
	})
}

type textureInfo struct {
	width, height int
	target        bool
}

// Recorder is a render.Backend that records every call as a Command.
//
// It validates calls the way a drawing backend does: unknown textures,
// drawing into sampled-only textures and use after Close are errors.
type Recorder struct {
	width, height int

	commands  []Command
	resources *ResourcePool
	textures  map[render.TextureID]textureInfo
	nextID    render.TextureID
	presents  int
	closed    bool

	// failure makes draw calls fail, to exercise error paths of callers.
	failure error
}

var _ render.Backend = (*Recorder)(nil)

// NewRecorder creates a recorder with a width x height screen.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:     width,
		height:    height,
		resources: NewResourcePool(),
		textures:  make(map[render.TextureID]textureInfo),
	}
}

// Name returns "recording".
func (r *Recorder) Name() string { return backend.NameRecording }

// Size returns the screen size.
func (r *Recorder) Size() (int, int) { return r.width, r.height }

// Width returns the screen width.
func (r *Recorder) Width() int { return r.width }

// Height returns the screen height.
func (r *Recorder) Height() int { return r.height }

// Fail makes every later DrawColored and DrawTextured call return err
// without recording it. Pass nil to draw normally again.
func (r *Recorder) Fail(err error) {
	r.failure = err
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

func (r *Recorder) checkTarget(id render.TextureID) error {
	if r.closed {
		return render.ErrClosed
	}
	if id == render.Screen {
		return nil
	}
	info, ok := r.textures[id]
	if !ok {
		return fmt.Errorf("recording: target %d: %w", id, render.ErrUnknownTexture)
	}
	if !info.target {
		return fmt.Errorf("recording: target %d: %w", id, render.ErrNotRenderTarget)
	}
	return nil
}

// Resize records a ResizeCommand.
func (r *Recorder) Resize(width, height int) error {
	if r.closed {
		return render.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("recording: resize %dx%d: %w", width, height, render.ErrInvalidSize)
	}
	r.width, r.height = width, height
	r.record(ResizeCommand{Width: width, Height: height})
	return nil
}

// Clear records a ClearCommand.
func (r *Recorder) Clear(target render.TextureID, color [4]float32) error {
	if err := r.checkTarget(target); err != nil {
		return err
	}
	r.record(ClearCommand{Target: target, Color: color})
	return nil
}

// ClearStencil records a ClearStencilCommand.
func (r *Recorder) ClearStencil(target render.TextureID, value uint8) error {
	if err := r.checkTarget(target); err != nil {
		return err
	}
	r.record(ClearStencilCommand{Target: target, Value: value})
	return nil
}

// DrawColored records a copy of d.
func (r *Recorder) DrawColored(d *render.ColorDraw) error {
	if err := r.checkTarget(d.Params.Target); err != nil {
		return err
	}
	if r.failure != nil {
		return r.failure
	}
	r.record(DrawColoredCommand{Draw: cloneColorDraw(d)})
	return nil
}

// DrawTextured records a copy of d.
func (r *Recorder) DrawTextured(d *render.TexDraw) error {
	if err := r.checkTarget(d.Params.Target); err != nil {
		return err
	}
	if _, ok := r.textures[d.Texture]; !ok {
		return fmt.Errorf("recording: texture %d: %w", d.Texture, render.ErrUnknownTexture)
	}
	if r.failure != nil {
		return r.failure
	}
	r.record(DrawTexturedCommand{Draw: cloneTexDraw(d)})
	return nil
}

// NewTexture pools a copy of img and records a NewTextureCommand.
func (r *Recorder) NewTexture(img *image.RGBA) (render.TextureID, error) {
	if r.closed {
		return 0, render.ErrClosed
	}
	b := img.Bounds()
	if b.Empty() {
		return 0, fmt.Errorf("recording: texture %dx%d: %w", b.Dx(), b.Dy(), render.ErrInvalidSize)
	}
	id := r.add(textureInfo{width: b.Dx(), height: b.Dy()})
	r.record(NewTextureCommand{ID: id, Image: r.resources.AddImage(img)})
	return id, nil
}

// NewRenderTexture records a NewRenderTextureCommand.
func (r *Recorder) NewRenderTexture(width, height int) (render.TextureID, error) {
	if r.closed {
		return 0, render.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("recording: render texture %dx%d: %w", width, height, render.ErrInvalidSize)
	}
	id := r.add(textureInfo{width: width, height: height, target: true})
	r.record(NewRenderTextureCommand{ID: id, Width: width, Height: height})
	return id, nil
}

func (r *Recorder) add(info textureInfo) render.TextureID {
	r.nextID++
	r.textures[r.nextID] = info
	return r.nextID
}

// TextureSize returns the size a texture was created with.
func (r *Recorder) TextureSize(id render.TextureID) (int, int, error) {
	info, ok := r.textures[id]
	if !ok {
		return 0, 0, fmt.Errorf("recording: texture %d: %w", id, render.ErrUnknownTexture)
	}
	return info.width, info.height, nil
}

// DestroyTexture records a DestroyTextureCommand for known textures.
func (r *Recorder) DestroyTexture(id render.TextureID) {
	if _, ok := r.textures[id]; !ok {
		return
	}
	delete(r.textures, id)
	r.record(DestroyTextureCommand{ID: id})
}

// Present records a PresentCommand.
func (r *Recorder) Present() error {
	if r.closed {
		return render.ErrClosed
	}
	r.presents++
	r.record(PresentCommand{})
	return nil
}

// Close marks the recorder closed. Recorded commands stay available.
func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool { return r.closed }

// Presents returns how many frames were presented.
func (r *Recorder) Presents() int { return r.presents }

// Commands returns every recorded command in order.
func (r *Recorder) Commands() []Command { return r.commands }

// ColorDraws returns the recorded colored draws in order.
func (r *Recorder) ColorDraws() []render.ColorDraw {
	var out []render.ColorDraw
	for _, c := range r.commands {
		if d, ok := c.(DrawColoredCommand); ok {
			out = append(out, d.Draw)
		}
	}
	return out
}

// TexDraws returns the recorded textured draws in order.
func (r *Recorder) TexDraws() []render.TexDraw {
	var out []render.TexDraw
	for _, c := range r.commands {
		if d, ok := c.(DrawTexturedCommand); ok {
			out = append(out, d.Draw)
		}
	}
	return out
}

// DrawCount returns the number of recorded draw calls of both kinds.
func (r *Recorder) DrawCount() int {
	n := 0
	for _, c := range r.commands {
		switch c.Type() {
		case CmdDrawColored, CmdDrawTextured:
			n++
		}
	}
	return n
}

// Reset forgets the recorded commands. Textures stay alive.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.presents = 0
}

// FinishRecording returns the commands recorded so far as an immutable
// Recording.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		width:     r.width,
		height:    r.height,
		commands:  append([]Command(nil), r.commands...),
		resources: r.resources.Clone(),
	}
}

// Recording is a finished sequence of backend calls.
type Recording struct {
	width, height int
	commands      []Command
	resources     *ResourcePool
}

// Width returns the screen width at the end of the recording.
func (r *Recording) Width() int {
	return r.width
}

// Height returns the screen height at the end of the recording.
func (r *Recording) Height() int {
	return r.height
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Resources returns the pool holding uploaded images.
func (r *Recording) Resources() *ResourcePool {
	return r.resources
}

// Playback replays the recording to b. Texture IDs are remapped to the
// IDs b hands out; textures the recording created are left alive.
func (r *Recording) Playback(b render.Backend) error {
	ids := make(map[render.TextureID]render.TextureID)
	remap := func(id render.TextureID) render.TextureID {
		if id == render.Screen {
			return id
		}
		if to, ok := ids[id]; ok {
			return to
		}
		// Never created by this recording; let the backend reject it.
		return id
	}

	for _, cmd := range r.commands {
		var err error
		switch c := cmd.(type) {
		case ResizeCommand:
			err = b.Resize(c.Width, c.Height)
		case ClearCommand:
			err = b.Clear(remap(c.Target), c.Color)
		case ClearStencilCommand:
			err = b.ClearStencil(remap(c.Target), c.Value)
		case DrawColoredCommand:
			d := c.Draw
			d.Params.Target = remap(d.Params.Target)
			err = b.DrawColored(&d)
		case DrawTexturedCommand:
			d := c.Draw
			d.Params.Target = remap(d.Params.Target)
			d.Texture = remap(d.Texture)
			err = b.DrawTextured(&d)
		case NewTextureCommand:
			var id render.TextureID
			id, err = b.NewTexture(r.resources.GetImage(c.Image))
			ids[c.ID] = id
		case NewRenderTextureCommand:
			var id render.TextureID
			id, err = b.NewRenderTexture(c.Width, c.Height)
			ids[c.ID] = id
		case DestroyTextureCommand:
			b.DestroyTexture(remap(c.ID))
			delete(ids, c.ID)
		case PresentCommand:
			err = b.Present()
		}
		if err != nil {
			return fmt.Errorf("recording: playback %s: %w", cmd.Type(), err)
		}
	}
	return nil
}
