package pipeline

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/ui.wgsl
var shaderSource string

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// ErrEmptyShader is returned when the embedded shader source is missing.
var ErrEmptyShader = errors.New("pipeline: shader source is empty")

// ShaderSource returns the WGSL source implementing the vertex and fragment
// stages.
func ShaderSource() string {
	return shaderSource
}

// CompileSPIRV compiles the WGSL source to SPIR-V words with naga.
func CompileSPIRV() ([]uint32, error) {
	if shaderSource == "" {
		return nil, ErrEmptyShader
	}
	spirvBytes, err := naga.Compile(shaderSource)
	if err != nil {
		return nil, fmt.Errorf("pipeline: compile ui shader: %w", err)
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("pipeline: compile ui shader: truncated SPIR-V (%d bytes)", len(spirvBytes))
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("pipeline: compile ui shader: invalid SPIR-V magic 0x%08X", words[0])
	}
	return words, nil
}
