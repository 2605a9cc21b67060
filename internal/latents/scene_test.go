package latents

import (
	"errors"
	"math"
	"testing"
)

func quatApproxEqual(a, b Quaternion) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			return false
		}
	}
	return true
}

func TestAxisAngleQuaternion(t *testing.T) {
	tests := []struct {
		name  string
		axis  string
		angle float64
		want  Quaternion
	}{
		{"identity about x", "x", 0, Quaternion{1, 0, 0, 0}},
		{"half turn about z", "z", math.Pi, Quaternion{0, 0, 0, 1}},
		{"quarter turn about y", "y", math.Pi / 2, Quaternion{math.Cos(math.Pi / 4), 0, math.Sin(math.Pi / 4), 0}},
		{"quarter turn about x", "x", math.Pi / 2, Quaternion{math.Cos(math.Pi / 4), math.Sin(math.Pi / 4), 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AxisAngleQuaternion(tt.axis, tt.angle)
			if err != nil {
				t.Fatalf("AxisAngleQuaternion() error = %v", err)
			}
			if !quatApproxEqual(got, tt.want) {
				t.Errorf("AxisAngleQuaternion(%q, %v) = %v, want %v", tt.axis, tt.angle, got, tt.want)
			}
		})
	}
}

func TestAxisAngleQuaternion_UnitNorm(t *testing.T) {
	for _, axis := range RotationAxes {
		for angle := 0.0; angle < 2*math.Pi; angle += 0.37 {
			q, err := AxisAngleQuaternion(axis, angle)
			if err != nil {
				t.Fatalf("AxisAngleQuaternion() error = %v", err)
			}
			norm := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
			if math.Abs(norm-1) > 1e-12 {
				t.Errorf("axis %q angle %v: |q|^2 = %v, want 1", axis, angle, norm)
			}
		}
	}
}

func TestAxisAngleQuaternion_InvalidAxis(t *testing.T) {
	_, err := AxisAngleQuaternion("w", 1.0)
	if err == nil {
		t.Fatal("AxisAngleQuaternion() should return error for an unknown axis")
	}
	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %T, want *InvalidParameterError", err)
	}
}
