package shaders

import (
	"strings"
	"testing"
)

func TestSourcesEmbedded(t *testing.T) {
	for name, src := range map[string]string{
		"car.vert": CarVertexShader,
		"car.frag": CarFragmentShader,
	} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: missing #version 410 core header", name)
		}
		if !strings.Contains(src, "void main()") {
			t.Errorf("%s: missing main", name)
		}
	}
}

// Meshes without normals produce zero vectors; normalizing those is
// undefined in GLSL, so both stages must check the length first.
func TestZeroNormalGuarded(t *testing.T) {
	vert := CarVertexShader
	if strings.Contains(vert, "normalize(uNormalMatrix * aNormal)") {
		t.Error("car.vert normalizes the vertex normal unconditionally")
	}
	if !strings.Contains(vert, "length(aNormal) > 0.0") {
		t.Error("car.vert does not check for a zero normal")
	}

	frag := CarFragmentShader
	guard := strings.Index(frag, "length(vNormal)")
	norm := strings.Index(frag, "normalize(vNormal)")
	if guard < 0 || norm < 0 || guard > norm {
		t.Error("car.frag must test length(vNormal) before normalizing it")
	}
}
