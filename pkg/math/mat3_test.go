package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMat3InverseMatchesMathGL(t *testing.T) {
	m := Translate(Vec3{1, 2, 3}).Mul(RotateZ(0.4)).Mul(Mat4(mgl32.Scale3D(2, 1, 0.5)))
	ref := mgl32.Mat4(m).Mat3()

	got := m.Upper3().Inverse()
	want := ref.Inv()
	for i := range got {
		if abs(got[i]-want[i]) > eps {
			t.Errorf("element %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestNormalMatrix(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"rotation", RotateZ(1.1)},
		{"translation", Translate(Vec3{9, -3, 2})},
		{"non-uniform scale", Mat4(mgl32.Scale3D(3, 1, 1)).Mul(RotateX(0.3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalMatrix(tt.m)
			want := mgl32.Mat4(tt.m).Mat3().Inv().Transpose()
			for i := range got {
				if abs(got[i]-want[i]) > eps {
					t.Errorf("element %d = %f, want %f", i, got[i], want[i])
				}
			}
		})
	}
}

func TestNormalMatrixKeepsNormalsPerpendicular(t *testing.T) {
	// A surface in the plane x = y has normal (1,-1,0). After stretching X,
	// the transformed normal must stay perpendicular to the transformed
	// tangent (1,1,0).
	m := Mat4(mgl32.Scale3D(4, 1, 1))
	tangent := m.TransformDirection(Vec3{1, 1, 0})
	normal := NormalMatrix(m).MulVec3(Vec3{1, -1, 0})

	if d := tangent.Dot(normal); abs(d) > eps {
		t.Errorf("tangent . normal = %f, want 0", d)
	}
	if d := tangent.Dot(m.TransformDirection(Vec3{1, -1, 0})); abs(d) < eps {
		t.Error("model matrix alone should not preserve perpendicularity under non-uniform scale")
	}
}

func TestMat3Transpose(t *testing.T) {
	m := Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	want := Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}
	if got := m.Transpose(); got != want {
		t.Errorf("Transpose() = %v, want %v", got, want)
	}
}
