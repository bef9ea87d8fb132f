package glview

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/nailtryon/tryon/internal/preview"
)

const zoomStep = 0.15

var keyActions = map[glfw.Key]preview.Action{
	glfw.KeyRight: preview.ActionNextPhoto,
	glfw.KeyLeft:  preview.ActionPrevPhoto,
	glfw.KeyS:     preview.ActionCycleShape,
	glfw.KeyL:     preview.ActionCycleLength,
	glfw.KeyC:     preview.ActionCycleCoats,
	glfw.KeyG:     preview.ActionToggleTopCoat,
	glfw.KeyK:     preview.ActionTogglePlaceholder,
}

// drag is per-gesture pan state, captured on mouse press.
type drag struct {
	active         bool
	mouseX, mouseY float64
	panX, panY     float64
}

func (w *Window) setupCallbacks() {
	var d drag
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press || action == glfw.Repeat {
			w.handleKey(key, mods)
		}
	})
	w.window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		d.active = action == glfw.Press
		if d.active {
			d.mouseX, d.mouseY = wnd.GetCursorPos()
			d.panX, d.panY = w.view.PanX, w.view.PanY
		}
	})
	w.window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		if !d.active {
			return
		}
		sx, sy := wnd.GetContentScale()
		w.view.SetPan(d.panX+(xpos-d.mouseX)*float64(sx), d.panY+(ypos-d.mouseY)*float64(sy))
	})
	w.window.SetScrollCallback(func(_ *glfw.Window, _, delta float64) {
		w.view.SetZoom(w.view.Zoom * (1 + delta*zoomStep))
	})
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, newW, newH int) {
		w.view.SetViewport(newW, newH)
	})
}

func (w *Window) handleKey(key glfw.Key, mods glfw.ModifierKey) {
	switch {
	case key == glfw.KeyEscape:
		w.window.SetShouldClose(true)
		return
	case key == glfw.KeyR:
		w.view.Reset()
		return
	case key == glfw.KeyM:
		w.showMesh = !w.showMesh
		return
	case key == glfw.KeyEqual && mods&glfw.ModSuper != 0:
		w.view.SetZoom(w.view.Zoom * (1 + zoomStep))
		return
	case key == glfw.KeyMinus && mods&glfw.ModSuper != 0:
		w.view.SetZoom(w.view.Zoom * (1 - zoomStep))
		return
	case key >= glfw.Key1 && key <= glfw.Key9:
		if w.state.PickSwatch(int(key - glfw.Key1)) {
			w.submit()
		}
		return
	}
	if w.state.Apply(keyActions[key]) {
		w.submit()
	}
}
