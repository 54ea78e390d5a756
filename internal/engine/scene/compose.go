package scene

import "github.com/Faultbox/racer/pkg/math"

// Composer derives draw commands from instances using a fixed light and
// material.
type Composer struct {
	Light    Light
	Material Material
}

// NewComposer creates a composer.
func NewComposer(light Light, material Material) *Composer {
	return &Composer{Light: light, Material: material}
}

// ModelMatrix returns T(position) · Rz(heading).
func ModelMatrix(inst *Instance) math.Mat4 {
	return math.Translate(inst.Position).Mul(math.RotateZ(math.Radians(inst.Heading)))
}

// WheelMatrix returns model · T(offset) · [Rz(steer)] · Rx(spin).
func WheelMatrix(model math.Mat4, inst *Instance, a Attachment) math.Mat4 {
	m := model.Mul(math.Translate(a.Offset))
	if a.Steers {
		m = m.Mul(math.RotateZ(math.Radians(inst.Steer)))
	}
	return m.Mul(math.RotateX(math.Radians(inst.Spin)))
}

// Compose returns one command for each instance body followed by one per
// wheel attachment, in attachment order, instance by instance. Instances
// without a prefab are skipped.
func (c *Composer) Compose(view math.Mat4, instances []*Instance) []DrawCommand {
	n := 0
	for _, inst := range instances {
		if inst.Prefab != nil {
			n += 1 + len(inst.Prefab.Attachments)
		}
	}
	cmds := make([]DrawCommand, 0, n)

	for _, inst := range instances {
		if inst.Prefab == nil {
			continue
		}
		diffuse := c.Light.Diffuse.Mul(c.Material.Diffuse).Mul(inst.Color)

		model := ModelMatrix(inst)
		cmds = append(cmds, command(inst.Name, RoleBody, inst.Prefab.Body, view, model, diffuse))

		for _, a := range inst.Prefab.Attachments {
			wheel := WheelMatrix(model, inst, a)
			cmds = append(cmds, command(inst.Name, RoleWheel, inst.Prefab.Wheel, view, wheel, diffuse))
		}
	}
	return cmds
}

// Frame composes a complete frame.
func (c *Composer) Frame(view, projection math.Mat4, instances []*Instance) *Frame {
	return &Frame{
		Projection:    projection,
		View:          view,
		LightPosition: view.MulVec4(c.Light.Position),
		Ambient:       c.Light.Ambient.Mul(c.Material.Ambient),
		Specular:      c.Light.Specular.Mul(c.Material.Specular),
		Shininess:     c.Material.Shininess,
		Commands:      c.Compose(view, instances),
	}
}

func command(name string, role Role, r DrawRange, view, model math.Mat4, diffuse Color) DrawCommand {
	mv := view.Mul(model)
	return DrawCommand{
		Instance:  name,
		Role:      role,
		Range:     r,
		Model:     model,
		ModelView: mv,
		Normal:    math.NormalMatrix(mv),
		Diffuse:   diffuse,
	}
}
