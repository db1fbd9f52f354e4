package wingmesh

import (
	"github.com/nat-n/geom"
)

// Mesh owns the three entity pools and is the only legal way to create or
// destroy vertices, edges and faces. Ids are positive, handed out from
// per-kind monotone counters and never reused; iteration follows creation
// order. A mesh is a single-owner resource: concurrent use of one mesh
// requires external mutual exclusion, distinct meshes are independent.
type Mesh struct {
	vertices []*Vertex
	edges    []*Edge
	faces    []*Face

	nextVId, nextEId, nextFId int

	shells, genus, rings int
}

func New() *Mesh {
	return &Mesh{nextVId: 1, nextEId: 1, nextFId: 1}
}

func (m *Mesh) VertexCount() int { return len(m.vertices) }
func (m *Mesh) EdgeCount() int   { return len(m.edges) }
func (m *Mesh) FaceCount() int   { return len(m.faces) }

// Shells, Genus and Rings accumulate the deltas declared by the Euler
// operators; together with the counts they satisfy
// V - E + F == 2*(Shells - Genus) + Rings after every operator.
func (m *Mesh) Shells() int { return m.shells }
func (m *Mesh) Genus() int  { return m.genus }
func (m *Mesh) Rings() int  { return m.rings }

// EulerBalanced reports whether the Euler–Poincaré identity holds for the
// accumulated shell, genus and ring counters.
func (m *Mesh) EulerBalanced() bool {
	return len(m.vertices)-len(m.edges)+len(m.faces) == 2*(m.shells-m.genus)+m.rings
}

// Vertices returns the live vertices in creation order. The slice is a
// copy; the entities are borrowed.
func (m *Mesh) Vertices() []*Vertex {
	out := make([]*Vertex, len(m.vertices))
	copy(out, m.vertices)
	return out
}

func (m *Mesh) Edges() []*Edge {
	out := make([]*Edge, len(m.edges))
	copy(out, m.edges)
	return out
}

func (m *Mesh) Faces() []*Face {
	out := make([]*Face, len(m.faces))
	copy(out, m.faces)
	return out
}

func (m *Mesh) EachVertex(cb func(*Vertex)) {
	for _, v := range m.vertices {
		cb(v)
	}
}

func (m *Mesh) EachEdge(cb func(*Edge)) {
	for _, e := range m.edges {
		cb(e)
	}
}

func (m *Mesh) EachFace(cb func(*Face)) {
	for _, f := range m.faces {
		cb(f)
	}
}

// VertexById returns the live vertex with the given id, or nil.
func (m *Mesh) VertexById(id int) *Vertex {
	for _, v := range m.vertices {
		if v.Id == id {
			return v
		}
	}
	return nil
}

func (m *Mesh) EdgeById(id int) *Edge {
	for _, e := range m.edges {
		if e.Id == id {
			return e
		}
	}
	return nil
}

func (m *Mesh) FaceById(id int) *Face {
	for _, f := range m.faces {
		if f.Id == id {
			return f
		}
	}
	return nil
}

// Destroy reclaims all entities and leaves every outstanding handle
// stale. Further operator calls on reclaimed handles fail with
// stale-handle errors.
func (m *Mesh) Destroy() {
	for _, v := range m.vertices {
		v.removed = true
	}
	for _, e := range m.edges {
		e.removed = true
	}
	for _, f := range m.faces {
		f.removed = true
	}
	m.vertices = nil
	m.edges = nil
	m.faces = nil
	m.shells = 0
	m.genus = 0
	m.rings = 0
}

// RecomputeNormals refreshes every cached face normal, e.g. after a batch
// of SetPosition edits.
func (m *Mesh) RecomputeNormals() {
	for _, f := range m.faces {
		f.refreshNormal()
	}
}

func (m *Mesh) newVertex(p geom.Vec3) *Vertex {
	v := &Vertex{Vec3: p, Id: m.nextVId, mesh: m}
	m.nextVId++
	m.vertices = append(m.vertices, v)
	return v
}

func (m *Mesh) newEdge(v1, v2 *Vertex) *Edge {
	e := &Edge{Id: m.nextEId, V1: v1, V2: v2, mesh: m}
	m.nextEId++
	m.edges = append(m.edges, e)
	return e
}

func (m *Mesh) newFace() *Face {
	f := &Face{Id: m.nextFId, mesh: m}
	m.nextFId++
	m.faces = append(m.faces, f)
	return f
}

func (m *Mesh) removeEdge(e *Edge) {
	for i, candidate := range m.edges {
		if candidate == e {
			m.edges = append(m.edges[:i], m.edges[i+1:]...)
			e.removed = true
			return
		}
	}
	panic("Model assumption violated: edge to remove must be in the pool")
}

func (m *Mesh) removeFace(f *Face) {
	for i, candidate := range m.faces {
		if candidate == f {
			m.faces = append(m.faces[:i], m.faces[i+1:]...)
			f.removed = true
			return
		}
	}
	panic("Model assumption violated: face to remove must be in the pool")
}

// Handle checks shared by the operators and queries. Each reports the
// first applicable failure: nil handle, foreign mesh, then staleness.

func (m *Mesh) checkVertex(v *Vertex, role string) error {
	if v == nil {
		return badArgument(role + " vertex is nil")
	}
	if v.mesh != m {
		return badArgument(role + " vertex belongs to another mesh")
	}
	if v.removed {
		return staleHandle(role+" vertex no longer exists", v.Id)
	}
	return nil
}

func (m *Mesh) checkEdge(e *Edge, role string) error {
	if e == nil {
		return badArgument(role + " edge is nil")
	}
	if e.mesh != m {
		return badArgument(role + " edge belongs to another mesh")
	}
	if e.removed {
		return staleHandle(role+" edge no longer exists", e.Id)
	}
	return nil
}

func (m *Mesh) checkFace(f *Face, role string) error {
	if f == nil {
		return badArgument(role + " face is nil")
	}
	if f.mesh != m {
		return badArgument(role + " face belongs to another mesh")
	}
	if f.removed {
		return staleHandle(role+" face no longer exists", f.Id)
	}
	return nil
}
