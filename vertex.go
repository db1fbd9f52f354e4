package wingmesh

import (
	"github.com/nat-n/geom"
)

// Vertex is a corner of the winged-edge structure. It embeds its position
// so that a *Vertex satisfies geom.Vec3I and can be handed directly to
// gomesh transformations.
type Vertex struct {
	geom.Vec3
	Id   int
	Edge *Edge // one incident edge, nil while the vertex is isolated

	mesh    *Mesh
	removed bool
}

func (v *Vertex) Position() geom.Vec3 {
	return v.Vec3
}

// SetPosition moves the vertex. Purely geometric: no topological
// side-effects, though cached face normals go stale until the next
// boundary modification or an explicit RecomputeNormals.
func (v *Vertex) SetPosition(p geom.Vec3) {
	v.Vec3 = p
}

func (v *Vertex) ReferencesEdge(e *Edge) bool {
	return e != nil && (e.V1 == v || e.V2 == v)
}

// Degree counts the live edges ending at v by scanning the owning pool.
func (v *Vertex) Degree() int {
	degree := 0
	for _, e := range v.mesh.edges {
		if e.V1 == v || e.V2 == v {
			degree++
		}
	}
	return degree
}
