// Package glview shows try-on renders in a GLFW window. Renders run on a
// tryon.Session in the background; finished canvases are handed to the main
// thread, uploaded as a texture and drawn as a letterboxed quad.
package glview

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/nailtryon/tryon/internal/preview"
	"github.com/nailtryon/tryon/internal/tryon"
)

var viewLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("TRYON_DEBUG_PREVIEW") == "1" {
		viewLogger = log.New(os.Stdout, "[preview] ", log.Ltime|log.Lmsgprefix)
	}
}

// Config configures the preview window.
type Config struct {
	Compositor *tryon.Compositor
	Assets     tryon.Assets
	State      preview.State
}

// Window owns the GLFW window, GL objects and preview state. All methods run
// on the main thread.
type Window struct {
	window  *glfw.Window
	shaders *ShaderManager
	vao     uint32
	vbo     uint32
	texture uint32
	texW    int
	texH    int

	// Nail mesh overlay, toggled with M.
	meshVAO      uint32
	meshVBO      uint32
	meshVertices int32
	showMesh     bool

	ctx     context.Context
	comp    *tryon.Compositor
	assets  tryon.Assets
	session *tryon.Session
	results chan tryon.Outcome

	view  *preview.View
	state preview.State
	title string
}

// Run opens the window and blocks until it is closed or ctx is done. The
// caller must be on the main OS thread.
func Run(ctx context.Context, cfg Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfw.Terminate()

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	cw, ch := cfg.Compositor.CanvasSize()
	window, err := glfw.CreateWindow(2*cw, 2*ch, "Try-on", nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	w := &Window{
		window:  window,
		shaders: NewShaderManager(),
		ctx:     ctx,
		comp:    cfg.Compositor,
		assets:  cfg.Assets,
		results: make(chan tryon.Outcome, 1),
		state:   cfg.State,
	}
	fw, fh := window.GetFramebufferSize()
	w.view = preview.NewView(fw, fh)
	w.initQuad()
	w.initMesh()

	w.session = tryon.NewSession(cfg.Compositor, w.deliver)
	defer w.session.Close()

	w.setupCallbacks()
	w.submit()

	for !window.ShouldClose() {
		select {
		case <-ctx.Done():
			window.SetShouldClose(true)
		case o := <-w.results:
			w.present(o)
		default:
		}

		fw, fh := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))
		gl.ClearColor(1, 1, 1, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		w.draw()
		w.updateTitle()

		window.SwapBuffers()
		glfw.WaitEventsTimeout(1.0 / 30)
	}
	return nil
}

// deliver runs on a session goroutine; it keeps only the newest outcome.
func (w *Window) deliver(o tryon.Outcome) {
	for {
		select {
		case w.results <- o:
			glfw.PostEmptyEvent()
			return
		default:
		}
		select {
		case <-w.results:
		default:
		}
	}
}

func (w *Window) submit() {
	gen := w.session.Submit(w.ctx, w.state.Request(w.assets))
	viewLogger.Printf("#%d %s", gen, w.state.Title(false))
}

func (w *Window) present(o tryon.Outcome) {
	if o.Err != nil {
		log.Printf("WARNING: render #%d failed: %v", o.Generation, o.Err)
		return
	}
	w.upload(o.Result.Image)

	meshes, err := preview.Mesh(w.comp, o.Request, o.Result)
	if err != nil {
		log.Printf("WARNING: render #%d: no nail mesh: %v", o.Generation, err)
		w.meshVertices = 0
		return
	}
	w.uploadMesh(preview.TriangleVertices(meshes))
}

func (w *Window) updateTitle() {
	title := w.state.Title(w.session.Processing())
	if title != w.title {
		w.window.SetTitle(title)
		w.title = title
	}
}

// initQuad creates the texture and the VAO/VBO for the image quad.
func (w *Window) initQuad() {
	gl.GenVertexArrays(1, &w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindVertexArray(w.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 16*4, nil, gl.DYNAMIC_DRAW)

	const stride = 4 * 4 // x, y, u, v
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.GenTextures(1, &w.texture)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// initMesh creates the VAO/VBO for the nail mesh overlay.
func (w *Window) initMesh() {
	gl.GenVertexArrays(1, &w.meshVAO)
	gl.GenBuffers(1, &w.meshVBO)
	gl.BindVertexArray(w.meshVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.meshVBO)

	const stride = 2 * 4 // x, y
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
}

// uploadMesh replaces the overlay triangles; coordinates are canvas pixels,
// the same space as the image quad.
func (w *Window) uploadMesh(vertices []float32) {
	w.meshVertices = int32(len(vertices) / 2)
	if w.meshVertices == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, w.meshVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	viewLogger.Printf("mesh: %d triangles", w.meshVertices/3)
}

// upload replaces the texture with a finished canvas.
func (w *Window) upload(img *image.NRGBA) {
	b := img.Bounds()
	if img.Stride != 4*b.Dx() {
		log.Printf("WARNING: canvas stride %d is not packed, skipping upload", img.Stride)
		return
	}
	w.texW, w.texH = b.Dx(), b.Dy()

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w.texW), int32(w.texH), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	iw, ih := float32(w.texW), float32(w.texH)
	quad := []float32{
		0, 0, 0, 0,
		iw, 0, 1, 0,
		0, ih, 0, 1,
		iw, ih, 1, 1,
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(quad))
}

func (w *Window) draw() {
	if w.texW == 0 {
		return
	}
	t, err := w.view.Transform(w.texW, w.texH)
	if err != nil {
		return // minimized
	}
	w.shaders.SetTransform(preview.Matrix4(t))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	if !w.showMesh || w.meshVertices == 0 {
		return
	}
	gl.BindVertexArray(w.meshVAO)
	w.shaders.SetSolid(true, [4]float32{0, 0.6, 1, 0.25})
	gl.DrawArrays(gl.TRIANGLES, 0, w.meshVertices)
	w.shaders.SetSolid(true, [4]float32{0, 0.3, 0.8, 0.9})
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	gl.DrawArrays(gl.TRIANGLES, 0, w.meshVertices)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	w.shaders.SetSolid(false, [4]float32{})
}
