package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/math"
	"github.com/spaghettifunk/hexwave/engine/platform"
	"github.com/spaghettifunk/hexwave/engine/renderer/metadata"
)

const vertexShaderSource = `#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec4 inColour;

uniform mat4 uViewProjection;

out vec4 fragColour;

void main() {
	gl_Position = uViewProjection * vec4(inPosition, 1.0);
	fragColour = inColour;
}
` + "\x00"

const fragmentShaderSource = `#version 410 core
in vec4 fragColour;
out vec4 outColour;

void main() {
	outColour = fragColour;
}
` + "\x00"

// The scene camera is fixed: the surface animates, the viewpoint does
// not. Orbit controls are an external collaborator.
var (
	cameraPosition = math.NewVec3(0.0, -3.4, 2.4)
	cameraTarget   = math.NewVec3(0.0, 0.0, 0.0)
	cameraUp       = math.NewVec3(0.0, 0.0, 1.0)
)

type geometryBuffers struct {
	vao            uint32
	vbo            uint32
	ebo            uint32
	indexCount     int32
	vertexCapacity int
}

// Backend renders geometry through an OpenGL 4.1 core context owned by
// the platform window. One unlit passthrough program, one VAO per
// geometry.
type Backend struct {
	platform *platform.Platform

	program               uint32
	viewProjectionUniform int32
	viewProjection        math.Mat4

	geometries map[uint32]*geometryBuffers
	nextID     uint32

	width  uint32
	height uint32
}

func New(p *platform.Platform) *Backend {
	return &Backend{
		platform:   p,
		geometries: make(map[uint32]*geometryBuffers),
	}
}

func (b *Backend) Initialize(applicationName string, width, height uint32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}
	core.LogInfo("OpenGL version %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), applicationName)

	program, err := linkProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	b.program = program
	b.viewProjectionUniform = gl.GetUniformLocation(program, gl.Str("uViewProjection\x00"))

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.04, 0.03, 0.08, 1.0)

	b.Resized(width, height)
	return nil
}

func (b *Backend) Shutdown() error {
	for id := range b.geometries {
		b.destroyBuffers(id)
	}
	gl.DeleteProgram(b.program)
	return nil
}

func (b *Backend) Resized(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	b.width = width
	b.height = height
	gl.Viewport(0, 0, int32(width), int32(height))

	aspect := float32(width) / float32(height)
	projection := math.NewMat4Perspective(math.DegToRad(45.0), aspect, 0.1, 100.0)
	view := math.NewMat4LookAt(cameraPosition, cameraTarget, cameraUp)
	b.viewProjection = view.Mul(projection)
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.viewProjectionUniform, 1, false, &b.viewProjection.Data[0])
	return nil
}

func (b *Backend) DrawGeometry(geometry *metadata.Geometry) error {
	buffers, exists := b.geometries[geometry.InternalID]
	if !exists {
		return fmt.Errorf("unknown internal geometry id %d", geometry.InternalID)
	}
	gl.BindVertexArray(buffers.vao)
	gl.DrawElements(gl.TRIANGLES, buffers.indexCount, gl.UNSIGNED_INT, nil)
	return nil
}

func (b *Backend) EndFrame() error {
	b.platform.SwapBuffers()
	return nil
}

const vertexStride = int32(unsafe.Sizeof(math.Vertex3D{}))

func (b *Backend) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) bool {
	if len(vertices) == 0 || len(indices) == 0 {
		core.LogError("cannot create geometry %s without vertex and index data", geometry.Name)
		return false
	}

	buffers := &geometryBuffers{
		indexCount:     int32(len(indices)),
		vertexCapacity: len(vertices),
	}

	gl.GenVertexArrays(1, &buffers.vao)
	gl.BindVertexArray(buffers.vao)

	gl.GenBuffers(1, &buffers.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffers.vbo)
	// Vertex data is re-uploaded every frame by the surface system.
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexStride), gl.Ptr(vertices), gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &buffers.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buffers.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// layout: position (vec3), normal (vec3), colour (vec4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, vertexStride, 6*4)

	gl.BindVertexArray(0)

	geometry.InternalID = b.nextID
	b.geometries[b.nextID] = buffers
	b.nextID++
	return true
}

func (b *Backend) UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D) bool {
	buffers, exists := b.geometries[geometry.InternalID]
	if !exists {
		core.LogError("cannot update unknown geometry %s", geometry.Name)
		return false
	}
	if len(vertices) == 0 {
		return false
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, buffers.vbo)
	if len(vertices) > buffers.vertexCapacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexStride), gl.Ptr(vertices), gl.DYNAMIC_DRAW)
		buffers.vertexCapacity = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*int(vertexStride), gl.Ptr(vertices))
	}
	return true
}

func (b *Backend) DestroyGeometry(geometry *metadata.Geometry) {
	if _, exists := b.geometries[geometry.InternalID]; !exists {
		return
	}
	b.destroyBuffers(geometry.InternalID)
	geometry.InternalID = metadata.InvalidID
}

func (b *Backend) destroyBuffers(internalID uint32) {
	buffers := b.geometries[internalID]
	gl.DeleteBuffers(1, &buffers.vbo)
	gl.DeleteBuffers(1, &buffers.ebo)
	gl.DeleteVertexArrays(1, &buffers.vao)
	delete(b.geometries, internalID)
}

func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("failed to link program: %s", infoLog)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("failed to compile shader: %s", infoLog)
	}
	return shader, nil
}
