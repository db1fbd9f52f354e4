package wingmesh

import (
	"math"
)

// Edge is the load-bearing record of the winged-edge structure. Besides
// its endpoints and the two faces it separates, it carries four wing
// links that encode both face boundary cycles:
//
//	PrevV1F1 / NextV1F1: predecessor and successor of this edge in the
//	boundary walk of F1, which traverses the edge from V1 to V2.
//	PrevV2F2 / NextV2F2: predecessor and successor in the walk of F2,
//	which traverses the edge from V2 to V1.
//
// A spur created by MEV has F1 == F2 and appears in that face's walk
// twice, once per direction. A boundary edge left behind by the boundary
// variant of KEF has one face slot nil and the matching wing pair nil.
type Edge struct {
	Id     int
	V1, V2 *Vertex
	F1, F2 *Face

	PrevV1F1, NextV1F1 *Edge
	PrevV2F2, NextV2F2 *Edge

	mesh    *Mesh
	removed bool
}

// OtherVertex returns the endpoint opposite v.
func (e *Edge) OtherVertex(v *Vertex) *Vertex {
	if v == e.V1 {
		return e.V2
	}
	return e.V1
}

// OtherFace returns the face across the edge from f.
func (e *Edge) OtherFace(f *Face) *Face {
	if f == e.F1 {
		return e.F2
	}
	return e.F1
}

func (e *Edge) ReferencesVertex(v *Vertex) bool {
	return e.V1 == v || e.V2 == v
}

func (e *Edge) ReferencesFace(f *Face) bool {
	return f != nil && (e.F1 == f || e.F2 == f)
}

func (e *Edge) Length() float64 {
	dx := e.V2.X - e.V1.X
	dy := e.V2.Y - e.V1.Y
	dz := e.V2.Z - e.V1.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// A side selects one of the two directed traversals of an edge within a
// face boundary walk: side 1 runs V1→V2 inside F1, side 2 runs V2→V1
// inside F2. All walk and rewiring code works on sides, because on a spur
// the face alone cannot distinguish the two passes.
type side struct {
	edge *Edge
	k    int // 1 or 2
}

func (s side) face() *Face {
	if s.k == 1 {
		return s.edge.F1
	}
	return s.edge.F2
}

func (s side) start() *Vertex {
	if s.k == 1 {
		return s.edge.V1
	}
	return s.edge.V2
}

func (s side) end() *Vertex {
	if s.k == 1 {
		return s.edge.V2
	}
	return s.edge.V1
}

func (s side) next() *Edge {
	if s.k == 1 {
		return s.edge.NextV1F1
	}
	return s.edge.NextV2F2
}

func (s side) prev() *Edge {
	if s.k == 1 {
		return s.edge.PrevV1F1
	}
	return s.edge.PrevV2F2
}

func (s side) setNext(e *Edge) {
	if s.k == 1 {
		s.edge.NextV1F1 = e
	} else {
		s.edge.NextV2F2 = e
	}
}

func (s side) setPrev(e *Edge) {
	if s.k == 1 {
		s.edge.PrevV1F1 = e
	} else {
		s.edge.PrevV2F2 = e
	}
}

func (s side) setFace(f *Face) {
	if s.k == 1 {
		s.edge.F1 = f
	} else {
		s.edge.F2 = f
	}
}

// sideFrom resolves the traversal of e that belongs to face f and leaves
// from vertex w. The start vertex disambiguates the two passes of a spur.
func sideFrom(e *Edge, f *Face, w *Vertex) (side, error) {
	if e.V1 == w && e.F1 == f {
		return side{e, 1}, nil
	}
	if e.V2 == w && e.F2 == f {
		return side{e, 2}, nil
	}
	return side{}, inconsistency("edge is not traversed by this face from this vertex", e.Id)
}

// sideEnding resolves the traversal of e that belongs to face f and
// arrives at vertex w.
func sideEnding(e *Edge, f *Face, w *Vertex) (side, error) {
	if e.V2 == w && e.F1 == f {
		return side{e, 1}, nil
	}
	if e.V1 == w && e.F2 == f {
		return side{e, 2}, nil
	}
	return side{}, inconsistency("edge is not traversed by this face into this vertex", e.Id)
}

// nextAroundVertex steps to the following edge in the cycle around v.
// The step crosses the face whose walk arrives at v through e, so
// successive steps cross successive faces of the star.
func nextAroundVertex(e *Edge, v *Vertex) *Edge {
	if v == e.V1 {
		return e.NextV2F2
	}
	return e.NextV1F1
}

// prevAroundVertex is the inverse of nextAroundVertex.
func prevAroundVertex(e *Edge, v *Vertex) *Edge {
	if v == e.V1 {
		return e.PrevV1F1
	}
	return e.PrevV2F2
}
