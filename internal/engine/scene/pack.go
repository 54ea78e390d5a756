package scene

import "github.com/Faultbox/racer/pkg/obj"

// PackMeshes concatenates the interleaved vertex data of meshes into one
// buffer and returns the draw range of each mesh, in argument order. Nil
// or empty meshes get a zero-length range.
func PackMeshes(meshes ...*obj.Mesh) ([]float32, []DrawRange) {
	total := 0
	for _, m := range meshes {
		total += m.VertexCount()
	}

	data := make([]float32, 0, total*obj.FloatsPerVertex)
	ranges := make([]DrawRange, len(meshes))

	var start int32
	for i, m := range meshes {
		count := int32(m.VertexCount())
		ranges[i] = DrawRange{Start: start, Count: count}
		if count > 0 {
			data = append(data, m.Interleave()...)
		}
		start += count
	}
	return data, ranges
}
