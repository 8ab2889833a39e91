package glrender

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matjam/crossfade/internal/render"
)

const (
	fovY = 50
	near = 0.01
	far  = 100
)

// Renderer is a GLFW window with a GL 2.1 context. It implements
// render.Context and render.DragSource. Every method must be called from the
// thread that created it.
type Renderer struct {
	win     *glfw.Window
	width   int
	height  int
	program *program

	background colorful.Color
	eye        mgl32.Vec3
	view       mgl32.Mat4
	projection mgl32.Mat4

	planes   []*plane
	textures map[render.TextureID]uint32 // id -> GL target

	onDrag   func(dx, dy, height float64)
	dragging bool
	lastX    float64
	lastY    float64

	disposed bool
}

var _ render.Context = (*Renderer)(nil)
var _ render.DragSource = (*Renderer)(nil)

// New opens a window of the given size and compiles the crossfade shader.
// The caller's goroutine must be locked to the main OS thread.
func New(title string, width, height int) (*Renderer, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window failed: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init failed: %w", err)
	}
	log.Debugf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	prog, err := newProgram(vertexShader, fragmentShader)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}

	r := &Renderer{
		win:      win,
		program:  prog,
		view:     mgl32.Ident4(),
		textures: make(map[render.TextureID]uint32),
	}

	fbw, fbh := win.GetFramebufferSize()
	r.resize(fbw, fbh)
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		r.resize(w, h)
	})
	win.SetMouseButtonCallback(r.mouseButton)
	win.SetCursorPosCallback(r.cursorPos)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	return r, nil
}

func (r *Renderer) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.width, r.height = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
	r.projection = mgl32.Perspective(mgl32.DegToRad(fovY), float32(w)/float32(h), near, far)
}

func (r *Renderer) GetSize() (int, int) {
	return r.width, r.height
}

func (r *Renderer) SetBackground(c colorful.Color) {
	r.background = c
}

func (r *Renderer) SetCamera(eye mgl32.Vec3, view mgl32.Mat4) {
	r.eye = eye
	r.view = view
}

func (r *Renderer) OnDrag(h func(dx, dy, height float64)) {
	r.onDrag = h
}

func (r *Renderer) mouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	r.dragging = action == glfw.Press
	if r.dragging {
		r.lastX, r.lastY = r.win.GetCursorPos()
	}
}

func (r *Renderer) cursorPos(_ *glfw.Window, x, y float64) {
	if !r.dragging {
		return
	}
	dx, dy := x-r.lastX, y-r.lastY
	r.lastX, r.lastY = x, y
	if r.onDrag != nil {
		r.onDrag(dx, dy, float64(r.height))
	}
}

// Render draws every plane, swaps buffers and polls window events. It
// returns render.ErrClosed once the window has been asked to close.
func (r *Renderer) Render() error {
	if r.disposed {
		return render.ErrClosed
	}
	if r.win.ShouldClose() {
		return render.ErrClosed
	}

	bg := r.background
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.use()
	r.program.setMat4(r.program.loc.projection, r.projection)
	r.program.setMat4(r.program.loc.view, r.view)
	gl.Uniform3f(r.program.loc.cameraPosition, r.eye[0], r.eye[1], r.eye[2])

	for _, p := range r.planes {
		p.draw(r.program)
	}

	r.win.SwapBuffers()
	glfw.PollEvents()
	return nil
}

// Dispose deletes the remaining GL objects and closes the window.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true

	for _, p := range r.planes {
		p.Dispose()
	}
	r.planes = nil
	for id := range r.textures {
		r.DeleteTexture(id)
	}
	r.program.delete()
	if r.win != nil {
		r.win.Destroy()
	}
	glfw.Terminate()
}
