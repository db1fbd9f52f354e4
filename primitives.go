package wingmesh

import (
	"github.com/nat-n/geom"
)

// Cube builds a closed axis-aligned cube of the given edge length,
// centered on the origin: 8 vertices, 12 edges, 6 faces, manifold.
func Cube(size float64) (*Mesh, error) {
	h := size / 2.0
	p := [8]geom.Vec3{
		{-h, -h, -h}, // 0
		{h, -h, -h},  // 1
		{h, h, -h},   // 2
		{-h, h, -h},  // 3
		{-h, -h, h},  // 4
		{h, -h, h},   // 5
		{h, h, h},    // 6
		{-h, h, h},   // 7
	}
	// Face windings as in the reference layout; ordered so that every
	// face attaches to the built region along one contiguous run.
	m, _, err := FromPolygons([][]geom.Vec3{
		{p[0], p[1], p[2], p[3]}, // front
		{p[4], p[0], p[3], p[7]}, // left
		{p[4], p[5], p[1], p[0]}, // bottom
		{p[1], p[5], p[6], p[2]}, // right
		{p[3], p[2], p[6], p[7]}, // top
		{p[5], p[4], p[7], p[6]}, // back
	}, DefaultTolerance)
	return m, err
}

// Plane builds a single rectangular face of the given extent, centered
// on the origin in the XY plane. The mesh also carries the ambient face
// on the reverse side.
func Plane(width, height float64) (*Mesh, error) {
	hw := width / 2.0
	hh := height / 2.0
	m, _, err := FromPolygons([][]geom.Vec3{
		{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}},
	}, DefaultTolerance)
	return m, err
}
