package recording

import (
	"slices"

	"github.com/gogpu/lux/render"
)

// CommandType identifies the type of a command.
// Each command type corresponds to one render.Backend call.
type CommandType uint8

const (
	// Surface commands
	CmdResize       CommandType = iota // Resize the screen
	CmdClear                           // Clear a target's color
	CmdClearStencil                    // Clear a target's stencil buffer
	CmdPresent                         // Finish a frame

	// Drawing commands
	CmdDrawColored  // Colored draw call
	CmdDrawTextured // Textured draw call

	// Texture commands
	CmdNewTexture       // Upload an image
	CmdNewRenderTexture // Create a drawable texture
	CmdDestroyTexture   // Release a texture
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdResize:           "Resize",
	CmdClear:            "Clear",
	CmdClearStencil:     "ClearStencil",
	CmdPresent:          "Present",
	CmdDrawColored:      "DrawColored",
	CmdDrawTextured:     "DrawTextured",
	CmdNewTexture:       "NewTexture",
	CmdNewRenderTexture: "NewRenderTexture",
	CmdDestroyTexture:   "DestroyTexture",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// Reference Types
// --------------------------------------------------------------------------

// ImageRef is a reference to an image in the resource pool.
// The zero value is a valid reference to the first image (if any).
type ImageRef uint32

// InvalidRef represents an invalid or unset reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference is valid (not InvalidRef).
func (r ImageRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// --------------------------------------------------------------------------
// Surface Commands
// --------------------------------------------------------------------------

// ResizeCommand changes the screen size.
type ResizeCommand struct {
	Width, Height int
}

// Type implements Command.
func (ResizeCommand) Type() CommandType { return CmdResize }

// ClearCommand fills a target with a color.
type ClearCommand struct {
	Target render.TextureID
	Color  [4]float32
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// ClearStencilCommand fills a target's stencil buffer.
type ClearStencilCommand struct {
	Target render.TextureID
	Value  uint8
}

// Type implements Command.
func (ClearStencilCommand) Type() CommandType { return CmdClearStencil }

// PresentCommand marks the end of a frame.
type PresentCommand struct{}

// Type implements Command.
func (PresentCommand) Type() CommandType { return CmdPresent }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// DrawColoredCommand holds a copy of a colored draw call.
type DrawColoredCommand struct {
	Draw render.ColorDraw
}

// Type implements Command.
func (DrawColoredCommand) Type() CommandType { return CmdDrawColored }

// DrawTexturedCommand holds a copy of a textured draw call.
type DrawTexturedCommand struct {
	Draw render.TexDraw
}

// Type implements Command.
func (DrawTexturedCommand) Type() CommandType { return CmdDrawTextured }

// --------------------------------------------------------------------------
// Texture Commands
// --------------------------------------------------------------------------

// NewTextureCommand uploads a pooled image as texture ID.
type NewTextureCommand struct {
	ID    render.TextureID
	Image ImageRef
}

// Type implements Command.
func (NewTextureCommand) Type() CommandType { return CmdNewTexture }

// NewRenderTextureCommand creates drawable texture ID.
type NewRenderTextureCommand struct {
	ID            render.TextureID
	Width, Height int
}

// Type implements Command.
func (NewRenderTextureCommand) Type() CommandType { return CmdNewRenderTexture }

// DestroyTextureCommand releases texture ID.
type DestroyTextureCommand struct {
	ID render.TextureID
}

// Type implements Command.
func (DestroyTextureCommand) Type() CommandType { return CmdDestroyTexture }

// --------------------------------------------------------------------------
// Copies
// --------------------------------------------------------------------------

func cloneParams(p render.DrawParams) render.DrawParams {
	if p.Scissor != nil {
		r := *p.Scissor
		p.Scissor = &r
	}
	return p
}

func cloneColorDraw(d *render.ColorDraw) render.ColorDraw {
	c := *d
	c.Vertices = slices.Clone(d.Vertices)
	c.Indices = slices.Clone(d.Indices)
	c.Params = cloneParams(d.Params)
	return c
}

func cloneTexDraw(d *render.TexDraw) render.TexDraw {
	c := *d
	c.Vertices = slices.Clone(d.Vertices)
	c.Indices = slices.Clone(d.Indices)
	c.Params = cloneParams(d.Params)
	return c
}
