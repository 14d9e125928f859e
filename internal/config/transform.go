package config

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// Transform returns the mesh placement as a matrix.
func (m MeshConfig) Transform() math.Mat4 {
	const deg = math32.Pi / 180

	scale := math.Vec3{X: m.Scale[0], Y: m.Scale[1], Z: m.Scale[2]}
	rot := math.Vec3{X: m.Rotate[0] * deg, Y: m.Rotate[1] * deg, Z: m.Rotate[2] * deg}
	move := math.Vec3{X: m.Translate[0], Y: m.Translate[1], Z: m.Translate[2]}

	t := math.Scale(scale)
	if rot != (math.Vec3{}) {
		t = math.RotateEuler(rot).Mul(t)
	}
	return math.Translate(move).Mul(t)
}
