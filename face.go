package wingmesh

import (
	"math"

	"github.com/nat-n/geom"
)

// Face is one oriented cell of the surface. Its boundary walk starts at
// Edge and follows the wing links of whichever side of each edge this
// face owns. Rings counts inner boundary loops absorbed by KFMRH; those
// loops are not reachable from Edge.
type Face struct {
	Id    int
	Edge  *Edge // one boundary edge, nil for a freshly made seed face
	Rings int

	normal  geom.Vec3
	mesh    *Mesh
	removed bool
}

// Normal returns the cached boundary normal. It is unit length except
// for degenerate boundaries, where it is the zero vector.
func (f *Face) Normal() geom.Vec3 {
	return f.normal
}

func (f *Face) ReferencesEdge(e *Edge) bool {
	return e != nil && (e.F1 == f || e.F2 == f)
}

// refreshNormal recomputes the cached normal with Newell's method, which
// stays robust on non-planar boundaries. The two passes of a spur cancel
// each other, so dangling edges contribute nothing.
func (f *Face) refreshNormal() {
	verts, err := f.mesh.BoundaryVertices(f)
	if err != nil || len(verts) < 3 {
		f.normal = geom.Vec3{}
		return
	}
	var n geom.Vec3
	for i, a := range verts {
		b := verts[(i+1)%len(verts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if length == 0 {
		f.normal = geom.Vec3{}
		return
	}
	f.normal = geom.Vec3{n.X / length, n.Y / length, n.Z / length}
}

// Area triangulates the boundary as a fan from its first vertex and sums
// the triangle areas. Meaningful for simple (spur-free) boundaries.
func (f *Face) Area() float64 {
	verts, err := f.mesh.BoundaryVertices(f)
	if err != nil || len(verts) < 3 {
		return 0
	}
	total := 0.0
	v0 := verts[0]
	for i := 1; i < len(verts)-1; i++ {
		ax := verts[i].X - v0.X
		ay := verts[i].Y - v0.Y
		az := verts[i].Z - v0.Z
		bx := verts[i+1].X - v0.X
		by := verts[i+1].Y - v0.Y
		bz := verts[i+1].Z - v0.Z
		cx := ay*bz - az*by
		cy := az*bx - ax*bz
		cz := ax*by - ay*bx
		total += 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
	}
	return total
}
