// Package scene turns car instances into per-frame draw commands.
//
// The package is pure: it knows nothing about OpenGL. A Drawer (the
// renderer) consumes the Frame it produces.
package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/racer/pkg/math"
)

// Instance validation errors.
var (
	ErrNoPrefab        = errors.New("instance has no prefab")
	ErrInvalidColor    = errors.New("color channel outside [0, 1]")
	ErrInvalidPosition = errors.New("position is not finite")
)

// Color is an RGBA color with channels in [0, 1].
type Color [4]float32

// White is the multiplicative identity for colors.
var White = Color{1, 1, 1, 1}

// Mul returns the component-wise product.
func (c Color) Mul(other Color) Color {
	return Color{c[0] * other[0], c[1] * other[1], c[2] * other[2], c[3] * other[3]}
}

// Valid reports whether every channel is in [0, 1].
func (c Color) Valid() bool {
	for _, ch := range c {
		if !(ch >= 0 && ch <= 1) {
			return false
		}
	}
	return true
}

// DrawRange delimits the vertices of one mesh inside the shared vertex
// buffer.
type DrawRange struct {
	Start int32
	Count int32
}

// Empty reports whether the range draws nothing.
func (r DrawRange) Empty() bool {
	return r.Count <= 0
}

// Attachment places a wheel relative to its car's origin.
type Attachment struct {
	Offset math.Vec3
	Steers bool // front wheels turn with the steering angle
}

// Prefab is the shared template for a kind of car: one body mesh, one wheel
// mesh, and where the wheels go.
type Prefab struct {
	Name        string
	Body        DrawRange
	Wheel       DrawRange
	Attachments []Attachment
}

// Instance is one car placed in the scene. Angles are in degrees.
type Instance struct {
	Name     string
	Prefab   *Prefab
	Position math.Vec3
	Heading  float32 // yaw about +Z
	Steer    float32 // front wheel yaw relative to the body
	Spin     float32 // wheel roll about the axle
	Color    Color
}

// NewInstance creates a validated instance.
func NewInstance(name string, prefab *Prefab, pos math.Vec3, heading float32, color Color) (*Instance, error) {
	if prefab == nil {
		return nil, fmt.Errorf("instance %q: %w", name, ErrNoPrefab)
	}
	if !pos.IsFinite() {
		return nil, fmt.Errorf("instance %q: %w", name, ErrInvalidPosition)
	}
	if !color.Valid() {
		return nil, fmt.Errorf("instance %q: %w: %v", name, ErrInvalidColor, color)
	}
	return &Instance{
		Name:     name,
		Prefab:   prefab,
		Position: pos,
		Heading:  math.WrapDegrees(heading),
		Color:    color,
	}, nil
}

// Light is a single point (W=1) or directional (W=0) light.
type Light struct {
	Position math.Vec4
	Ambient  Color
	Diffuse  Color
	Specular Color
}

// Material is the surface shared by every car; instances tint its diffuse
// term with their own color.
type Material struct {
	Ambient   Color
	Diffuse   Color
	Specular  Color
	Shininess float32
}

// Role tells the drawer which mesh a command draws.
type Role int

const (
	RoleBody Role = iota
	RoleWheel
)

func (r Role) String() string {
	switch r {
	case RoleBody:
		return "body"
	case RoleWheel:
		return "wheel"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// DrawCommand is everything needed to issue one draw call.
type DrawCommand struct {
	Instance  string
	Role      Role
	Range     DrawRange
	Model     math.Mat4
	ModelView math.Mat4
	Normal    math.Mat3
	Diffuse   Color
}

// Frame is the composed output for one rendered frame.
type Frame struct {
	Projection math.Mat4
	View       math.Mat4
	// LightPosition is in eye space.
	LightPosition math.Vec4
	Ambient       Color
	Specular      Color
	Shininess     float32
	Commands      []DrawCommand
}

// Drawer issues the draw calls for a frame.
type Drawer interface {
	Draw(frame *Frame)
}
