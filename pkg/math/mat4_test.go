package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := TranslateVec(Vec3{5, 10, 15})

	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v, want (5, 10, 15)", got)
	}
}

func TestTransformVec3(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 3, 4), Vec3{1, 1, 1}, Vec3{2, 3, 4}},
		{"scale then translate", Translate(1, 0, 0).Mul(Scale(2, 2, 2)), Vec3{1, 1, 1}, Vec3{3, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformVec3(tt.in); got != tt.want {
				t.Errorf("TransformVec3(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateY(t *testing.T) {
	// A quarter turn takes +X to -Z in a right-handed system.
	got := RotateY(math32.Pi / 2).TransformVec3(Vec3{1, 0, 0})
	if math32.Abs(got.X) > 1e-6 || math32.Abs(got.Z+1) > 1e-6 {
		t.Errorf("RotateY(pi/2) * X = %v, want (0, 0, -1)", got)
	}
}

func TestLookAtOrigin(t *testing.T) {
	view := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformVec3(Vec3{})
	// The target sits 5 units down the view axis.
	if math32.Abs(got.Z+5) > 1e-5 {
		t.Errorf("LookAt: target in view space = %v, want z=-5", got)
	}
}

func TestFlattenMat4(t *testing.T) {
	flat := FlattenMat4([]Mat4{Identity(), Translate(1, 2, 3)})
	if len(flat) != 32 {
		t.Fatalf("len = %d, want 32", len(flat))
	}
	if flat[16+12] != 1 || flat[16+13] != 2 || flat[16+14] != 3 {
		t.Errorf("second matrix translation = %v, want (1, 2, 3)", flat[28:31])
	}
}
