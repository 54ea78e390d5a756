// Package world holds the simulation state of a racing session: the cars,
// the camera and the input that drives them.
package world

import (
	gomath "math"

	"github.com/Faultbox/racer/internal/engine/camera"
	"github.com/Faultbox/racer/internal/engine/input"
	"github.com/Faultbox/racer/internal/engine/scene"
	"github.com/Faultbox/racer/pkg/math"
)

// FPS limits for the runtime frame-rate control.
const (
	MinFPS  = 1
	MaxFPS  = 240
	FPSStep = 5
)

// Driving holds player car handling. Rates are per second.
type Driving struct {
	Speed    float32 // units/s at full throttle
	TurnRate float32 // degrees/s at full lock
	MaxSteer float32 // front wheel angle at full lock, degrees
	SpinRate float32 // wheel spin at full throttle, degrees/s
}

// State is the whole mutable session state. It is owned by the frame loop
// and touched from one goroutine only.
type State struct {
	Cars    []*scene.Instance
	Player  int
	Camera  *camera.OrbitCamera
	Axes    input.Axes
	Drag    input.Drag
	Driving Driving

	TargetFPS float64

	// Viewport size in pixels
	Width  int
	Height int

	// Screenshot is set by the capture key and cleared by the frame loop
	// once the frame has been saved.
	Screenshot bool

	Quit bool
}

// New creates a state for the given cars. The camera starts on the player.
func New(cars []*scene.Instance, player int, cam *camera.OrbitCamera, driving Driving, targetFPS float64) *State {
	s := &State{
		Cars:      cars,
		Player:    player,
		Camera:    cam,
		Driving:   driving,
		TargetFPS: clampFPS(targetFPS),
	}
	if p := s.PlayerCar(); p != nil {
		cam.Track(p.Position)
	}
	return s
}

// PlayerCar returns the car driven by the arrow keys, or nil.
func (s *State) PlayerCar() *scene.Instance {
	if s.Player < 0 || s.Player >= len(s.Cars) {
		return nil
	}
	return s.Cars[s.Player]
}

// Aspect returns the viewport aspect ratio, or 1 before the first resize.
func (s *State) Aspect() float32 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Handle applies one input event.
func (s *State) Handle(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		s.Quit = true

	case input.EventWindowResize:
		s.Width, s.Height = ev.Width, ev.Height

	case input.EventKeyDown:
		s.keyDown(ev)

	case input.EventKeyUp:
		s.Axes.Release(ev.Key)

	case input.EventMouseDown:
		s.Drag.Begin(ev.Button)

	case input.EventMouseUp:
		s.Drag.End(ev.Button)

	case input.EventMouseMove:
		if s.Drag.Active() {
			s.Camera.HandleDrag(float32(ev.XRel), float32(ev.YRel))
		}

	case input.EventMouseWheel:
		s.Camera.Zoom(float32(ev.WheelY))

	case input.EventFocusLost:
		s.Axes.Reset()
		s.Drag.Cancel()
	}
}

func (s *State) keyDown(ev input.Event) {
	switch ev.Key {
	case input.KeyEscape:
		s.Quit = true
	case input.KeyFollow:
		if !ev.Repeat {
			s.Camera.ToggleFollow()
		}
	case input.KeyFPSUp:
		s.TargetFPS = clampFPS(s.TargetFPS + FPSStep)
	case input.KeyFPSDown:
		s.TargetFPS = clampFPS(s.TargetFPS - FPSStep)
	case input.KeyZoomIn:
		s.Camera.Zoom(1)
	case input.KeyZoomOut:
		s.Camera.Zoom(-1)
	case input.KeyScreenshot:
		if !ev.Repeat {
			s.Screenshot = true
		}
	default:
		s.Axes.Press(ev.Key)
	}
}

// Update advances the player car by dt seconds and keeps the camera on it.
//
// Right is clockwise seen from above, so a positive horizontal axis lowers
// the heading. Turning only happens while moving and inverts in reverse.
func (s *State) Update(dt float32) {
	car := s.PlayerCar()
	if car == nil {
		return
	}

	h := float32(s.Axes.Horizontal)
	v := float32(s.Axes.Vertical)
	d := s.Driving

	car.Steer = -h * d.MaxSteer

	if v != 0 && dt > 0 {
		car.Heading = math.WrapDegrees(car.Heading - d.TurnRate*h*v*dt)
		car.Position = car.Position.Add(Forward(car.Heading).Scale(d.Speed * v * dt))
		car.Spin = math.WrapDegrees(car.Spin - d.SpinRate*v*dt)
	}

	s.Camera.Track(car.Position)
}

// Forward returns the unit vector a car with the given heading (degrees)
// drives along. Cars face +Y at heading 0.
func Forward(heading float32) math.Vec3 {
	sin, cos := gomath.Sincos(float64(math.Radians(heading)))
	return math.Vec3{X: float32(-sin), Y: float32(cos)}
}

func clampFPS(fps float64) float64 {
	return max(MinFPS, min(MaxFPS, fps))
}
