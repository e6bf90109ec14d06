//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded WGSL shader sources.

//go:embed shaders/colored.wgsl
var coloredShaderSource string

//go:embed shaders/textured.wgsl
var texturedShaderSource string

// ColoredShaderSource returns the WGSL source of the colored batch shader.
func ColoredShaderSource() string { return coloredShaderSource }

// TexturedShaderSource returns the WGSL source of the textured batch shader.
func TexturedShaderSource() string { return texturedShaderSource }

// CompileSPIRV compiles WGSL source to SPIR-V words with naga.
func CompileSPIRV(wgsl string) ([]uint32, error) {
	bytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(bytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V size %d is not a whole number of words", len(bytes))
	}
	// SPIR-V is a stream of little-endian 32-bit words.
	words := make([]uint32, len(bytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(bytes[i*4:])
	}
	return words, nil
}

// shaderSource returns the module source handed to the device: the WGSL
// text, or SPIR-V compiled ahead of time when precompile is set.
func shaderSource(wgsl string, precompile bool) (hal.ShaderSource, error) {
	if !precompile {
		return hal.ShaderSource{WGSL: wgsl}, nil
	}
	words, err := CompileSPIRV(wgsl)
	if err != nil {
		return hal.ShaderSource{}, err
	}
	return hal.ShaderSource{SPIRV: words}, nil
}
