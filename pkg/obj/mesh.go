package obj

import "github.com/Faultbox/racer/pkg/math"

// FloatsPerVertex is the stride of Interleave output: position (3),
// normal (3), texture coordinate (2).
const FloatsPerVertex = 8

// Mesh holds flat, non-indexed vertex attributes. One entry is emitted per
// face corner, so shared corners are duplicated.
//
// A Mesh is immutable once returned by the parser and may be shared between
// any number of instances.
type Mesh struct {
	Positions []math.Vec4
	Normals   []math.Vec3
	TexCoords []math.Vec2
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// VertexCount returns the number of emitted vertices, which is also the
// length of the mesh's draw range. A nil mesh has zero vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Positions)
}

// TriangleCount returns VertexCount / 3.
func (m *Mesh) TriangleCount() int {
	return m.VertexCount() / 3
}

// Empty reports whether the mesh has nothing to draw.
func (m *Mesh) Empty() bool {
	return m.VertexCount() == 0
}

// Bounds returns the bounding box of all positions.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() Bounds {
	if m.Empty() {
		return Bounds{}
	}
	b := Bounds{Min: m.Positions[0].XYZ(), Max: m.Positions[0].XYZ()}
	for _, p := range m.Positions[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}

// Interleave returns the vertex data as one float slice laid out
// position.xyz, normal.xyz, uv per vertex, ready for a vertex buffer.
func (m *Mesh) Interleave() []float32 {
	n := m.VertexCount()
	out := make([]float32, 0, n*FloatsPerVertex)
	for i := 0; i < n; i++ {
		p, nv, uv := m.Positions[i], m.Normals[i], m.TexCoords[i]
		out = append(out, p.X, p.Y, p.Z, nv.X, nv.Y, nv.Z, uv.X, uv.Y)
	}
	return out
}
