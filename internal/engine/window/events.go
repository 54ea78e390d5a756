package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/racer/internal/engine/input"
)

// keymap translates SDL scancodes to game keys.
var keymap = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_UP:       input.KeyUp,
	sdl.SCANCODE_DOWN:     input.KeyDown,
	sdl.SCANCODE_LEFT:     input.KeyLeft,
	sdl.SCANCODE_RIGHT:    input.KeyRight,
	sdl.SCANCODE_ESCAPE:   input.KeyEscape,
	sdl.SCANCODE_F:        input.KeyFollow,
	sdl.SCANCODE_EQUALS:   input.KeyFPSUp,
	sdl.SCANCODE_KP_PLUS:  input.KeyFPSUp,
	sdl.SCANCODE_MINUS:    input.KeyFPSDown,
	sdl.SCANCODE_KP_MINUS: input.KeyFPSDown,
	sdl.SCANCODE_PAGEUP:   input.KeyZoomIn,
	sdl.SCANCODE_PAGEDOWN: input.KeyZoomOut,
	sdl.SCANCODE_F12:      input.KeyScreenshot,
}

// PollEvents drains the SDL queue, appending converted events to dst.
// Returns true if a quit was requested.
func PollEvents(dst []input.Event) ([]input.Event, bool) {
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			dst = append(dst, input.Event{Type: input.EventQuit})
			quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				dst = append(dst, input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				dst = append(dst, input.Event{Type: input.EventFocusLost})
			}

		case *sdl.KeyboardEvent:
			key, ok := keymap[e.Keysym.Scancode]
			if !ok {
				continue
			}
			typ := input.EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = input.EventKeyUp
			}
			dst = append(dst, input.Event{Type: typ, Key: key, Repeat: e.Repeat != 0})

		case *sdl.MouseMotionEvent:
			dst = append(dst, input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				XRel:   int(e.XRel),
				YRel:   int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			typ := input.EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				typ = input.EventMouseUp
			}
			dst = append(dst, input.Event{
				Type:   typ,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})

		case *sdl.MouseWheelEvent:
			dy := int(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			dst = append(dst, input.Event{Type: input.EventMouseWheel, WheelY: dy})
		}
	}

	return dst, quit
}
