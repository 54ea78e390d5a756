package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 0}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero.Normalize() = %v, want zero", z)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("expected finite vector")
	}
	if (Vec3{float32(math.NaN()), 0, 0}).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if (Vec3{0, float32(math.Inf(1)), 0}).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

func TestVec4Mul(t *testing.T) {
	got := Vec4{1, 0.5, 0.25, 1}.Mul(Vec4{0.5, 0.5, 4, 1})
	want := Vec4{0.5, 0.25, 1, 1}
	if got != want {
		t.Errorf("Vec4.Mul() = %v, want %v", got, want)
	}
}

func TestWrapAndClamp(t *testing.T) {
	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"wrap degrees negative", WrapDegrees(-90), 270},
		{"wrap degrees over", WrapDegrees(725), 5},
		{"wrap radians negative", WrapRadians(-math.Pi / 2), 3 * math.Pi / 2},
		{"wrap degrees tiny negative", WrapDegrees(-1e-6), 0},
		{"wrap radians tiny negative", WrapRadians(-1e-8), 0},
		{"clamp low", Clamp(-1, 0, 1), 0},
		{"clamp high", Clamp(2, 0, 1), 1},
		{"clamp inside", Clamp(0.5, 0, 1), 0.5},
		{"radians", Radians(180), math.Pi},
	}

	for _, tt := range tests {
		if abs(tt.got-tt.want) > eps {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}
