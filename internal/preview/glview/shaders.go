package glview

import (
	"log"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ShaderManager handles OpenGL shader program compilation, linking, and uniform
// management.
type ShaderManager struct {
	program    uint32 // program ID
	uTransform int32  // uniform location for transformation matrix
	uTexture   int32  // uniform location for the sampler
	uSolid     int32  // uniform location for the solid-colour switch
	uColor     int32  // uniform location for the solid colour
}

// Vertex shader. Applies the uniform transformation matrix to the quad
// corners (in image pixels) and forwards the texture coordinates.
const vertexShaderSource = `
#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;

uniform mat4 uTransform;

out vec2 vUV;

void main() {
    gl_Position = uTransform * vec4(aPos, 0.0, 1.0);
    vUV = aUV;
}
` + "\x00"

// Fragment shader. Samples the rendered try-on (straight alpha), or fills
// with uColor when drawing the nail mesh overlay.
const fragmentShaderSource = `
#version 330 core
in vec2 vUV;
out vec4 FragColor;

uniform sampler2D uTexture;
uniform bool uSolid;
uniform vec4 uColor;

void main() {
    if (uSolid) {
        FragColor = uColor;
    } else {
        FragColor = texture(uTexture, vUV);
    }
}
` + "\x00"

// NewShaderManager creates and initializes a new shader manager with compiled
// and linked shaders.
func NewShaderManager() *ShaderManager {
	sm := &ShaderManager{}

	vertexShader := sm.compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	defer gl.DeleteShader(vertexShader)

	fragmentShader := sm.compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	defer gl.DeleteShader(fragmentShader)

	sm.program = gl.CreateProgram()
	gl.AttachShader(sm.program, vertexShader)
	gl.AttachShader(sm.program, fragmentShader)
	gl.LinkProgram(sm.program)

	var status int32
	gl.GetProgramiv(sm.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(sm.program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(sm.program, logLength, nil, gl.Str(logText))
		log.Fatalf("Shader linking failed: %s", logText)
	}

	sm.uTransform = gl.GetUniformLocation(sm.program, gl.Str("uTransform\x00"))
	sm.uTexture = gl.GetUniformLocation(sm.program, gl.Str("uTexture\x00"))
	sm.uSolid = gl.GetUniformLocation(sm.program, gl.Str("uSolid\x00"))
	sm.uColor = gl.GetUniformLocation(sm.program, gl.Str("uColor\x00"))
	gl.UseProgram(sm.program) // bind the shader program
	gl.Uniform1i(sm.uTexture, 0)
	gl.Uniform1i(sm.uSolid, 0)
	return sm
}

// SetSolid switches between texture sampling and a flat colour.
func (sm *ShaderManager) SetSolid(on bool, rgba [4]float32) {
	if !on {
		gl.Uniform1i(sm.uSolid, 0)
		return
	}
	gl.Uniform1i(sm.uSolid, 1)
	gl.Uniform4f(sm.uColor, rgba[0], rgba[1], rgba[2], rgba[3])
}

// SetTransform sets the uniform transformation matrix.
func (sm *ShaderManager) SetTransform(matrix [16]float32) {
	gl.UniformMatrix4fv(sm.uTransform, 1, false, &matrix[0])
}

// compileShader compiles a single shader from source.
func (sm *ShaderManager) compileShader(source string, shaderType uint32) uint32 {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		log.Fatalf("Shader compilation failed: %s", logText)
	}

	return shader
}
