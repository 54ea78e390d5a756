// Package input defines the backend-neutral input events and the small
// amount of state derived from them. Translating SDL events into these types
// is done by the window package.
package input

// EventType identifies the kind of Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
	EventFocusLost
)

// Key is a game-level key. Keys the game does not care about map to KeyNone.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyFollow  // toggle camera follow
	KeyFPSUp   // raise target frame rate
	KeyFPSDown // lower target frame rate
	KeyZoomIn
	KeyZoomOut
	KeyScreenshot
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool // key auto-repeat
	Width  int
	Height int
	MouseX int
	MouseY int
	XRel   int // motion since the previous move event
	YRel   int
	WheelY int // positive away from the user
	Button uint8
}
