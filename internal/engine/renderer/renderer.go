// Package renderer draws composed scene frames with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/racer/internal/engine/renderer/shaders"
	"github.com/Faultbox/racer/internal/engine/scene"
	"github.com/Faultbox/racer/internal/engine/shader"
	"github.com/Faultbox/racer/internal/engine/texture"
	"github.com/Faultbox/racer/internal/logger"
	"github.com/Faultbox/racer/pkg/obj"
)

// Config holds renderer configuration.
type Config struct {
	ClearColor [4]float32
}

// DefaultConfig clears to white.
func DefaultConfig() Config {
	return Config{ClearColor: [4]float32{1, 1, 1, 1}}
}

// Renderer owns the GPU state for the car scene: one VAO/VBO holding every
// packed mesh, the lit shader and the bound texture.
type Renderer struct {
	config  Config
	program *shader.Program

	vao         uint32
	vbo         uint32
	vertexCount int32
	tex         uint32

	locProjection   int32
	locModelView    int32
	locNormalMatrix int32
	locLightPos     int32
	locAmbient      int32
	locDiffuse      int32
	locSpecular     int32
	locShininess    int32
	locTexture      int32

	draws int
}

// New initialises OpenGL and compiles the shader. A GL context must be
// current on the calling thread.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.Compile(shaders.CarVertexShader, shaders.CarFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("car shader: %w", err)
	}

	r := &Renderer{
		config:          cfg,
		program:         program,
		locProjection:   program.Uniform("uProjection"),
		locModelView:    program.Uniform("uModelView"),
		locNormalMatrix: program.Uniform("uNormalMatrix"),
		locLightPos:     program.Uniform("uLightPosition"),
		locAmbient:      program.Uniform("uAmbient"),
		locDiffuse:      program.Uniform("uDiffuse"),
		locSpecular:     program.Uniform("uSpecular"),
		locShininess:    program.Uniform("uShininess"),
		locTexture:      program.Uniform("uTexture"),
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	r.SetTexture(texture.Placeholder())

	return r, nil
}

// Upload replaces the vertex buffer with interleaved vertices as produced
// by scene.PackMeshes.
func (r *Renderer) Upload(vertices []float32) {
	r.deleteBuffers()

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(obj.FloatsPerVertex * 4)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	r.vertexCount = int32(len(vertices) / obj.FloatsPerVertex)
	logger.Debug("vertex buffer uploaded", zap.Int32("vertices", r.vertexCount))
}

// SetTexture uploads img and makes it the texture bound for every draw,
// releasing the previous one.
func (r *Renderer) SetTexture(img *image.RGBA) {
	if img == nil || len(img.Pix) == 0 {
		return
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	if r.tex != 0 {
		gl.DeleteTextures(1, &r.tex)
	}
	r.tex = texID

	logger.Debug("texture bound",
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Begin clears the color and depth buffers.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw issues one draw call per command. Commands with an empty range, or
// whose range lies outside the uploaded buffer, are skipped.
func (r *Renderer) Draw(frame *scene.Frame) {
	r.draws = 0
	if frame == nil || r.vao == 0 {
		return
	}

	r.program.Use()

	gl.UniformMatrix4fv(r.locProjection, 1, false, frame.Projection.Ptr())
	lp := frame.LightPosition
	gl.Uniform4f(r.locLightPos, lp.X, lp.Y, lp.Z, lp.W)
	gl.Uniform4fv(r.locAmbient, 1, &frame.Ambient[0])
	gl.Uniform4fv(r.locSpecular, 1, &frame.Specular[0])
	gl.Uniform1f(r.locShininess, frame.Shininess)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.Uniform1i(r.locTexture, 0)

	gl.BindVertexArray(r.vao)
	for i := range frame.Commands {
		cmd := &frame.Commands[i]
		if cmd.Range.Empty() || cmd.Range.Start+cmd.Range.Count > r.vertexCount {
			continue
		}

		gl.UniformMatrix4fv(r.locModelView, 1, false, cmd.ModelView.Ptr())
		gl.UniformMatrix3fv(r.locNormalMatrix, 1, false, cmd.Normal.Ptr())
		gl.Uniform4fv(r.locDiffuse, 1, &cmd.Diffuse[0])

		gl.DrawArrays(gl.TRIANGLES, cmd.Range.Start, cmd.Range.Count)
		r.draws++
	}
	gl.BindVertexArray(0)
}

// ReadPixels reads back the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}

// DrawCalls returns the number of draw calls issued by the last Draw.
func (r *Renderer) DrawCalls() int {
	return r.draws
}

func (r *Renderer) deleteBuffers() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	r.vertexCount = 0
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.deleteBuffers()
	if r.tex != 0 {
		gl.DeleteTextures(1, &r.tex)
		r.tex = 0
	}
	if r.program != nil {
		r.program.Delete()
	}
}

var _ scene.Drawer = (*Renderer)(nil)
