package sdf

import (
	"fmt"
	"strings"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// SignMode selects how a query decides whether a point is inside the mesh.
// All modes assume a closed mesh with outward-facing (counter-clockwise)
// winding; other meshes get a well-defined but unreliable sign.
type SignMode uint8

const (
	// SignPseudoNormal compares against the angle-weighted pseudo-normal of
	// the face, edge or vertex holding the closest point.
	SignPseudoNormal SignMode = iota
	// SignFaceNormal compares against the closest triangle's face normal.
	SignFaceNormal
	// SignRayParity counts surface crossings along three rays and takes
	// the majority.
	SignRayParity
)

// String returns the mode name used in configuration files.
func (m SignMode) String() string {
	switch m {
	case SignPseudoNormal:
		return "pseudo-normal"
	case SignFaceNormal:
		return "face-normal"
	case SignRayParity:
		return "ray-parity"
	default:
		return fmt.Sprintf("SignMode(%d)", m)
	}
}

// ParseSignMode converts a configuration name to a SignMode.
func ParseSignMode(s string) (SignMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pseudo-normal", "pseudonormal":
		return SignPseudoNormal, nil
	case "face-normal", "face":
		return SignFaceNormal, nil
	case "ray-parity", "parity":
		return SignRayParity, nil
	default:
		return SignPseudoNormal, fmt.Errorf("unknown sign mode %q", s)
	}
}

func (m SignMode) validate() error {
	if m > SignRayParity {
		return fmt.Errorf("unknown sign mode %d", m)
	}
	return nil
}

// inside decides the sign for p whose closest surface point is h.
func (ix *Index) inside(p math.Vec3, h hit) bool {
	switch ix.signMode {
	case SignRayParity:
		return ix.insideByParity(p)
	case SignFaceNormal:
		return p.Sub(h.point).Dot(ix.normals.face[h.tri]) < 0
	default:
		return p.Sub(h.point).Dot(ix.normals.at(ix.tris, h.tri, h.feat)) < 0
	}
}
