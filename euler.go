package wingmesh

import (
	"github.com/nat-n/geom"
)

// The five Euler operators. Each one validates its preconditions against
// the untouched mesh, then performs all wiring; on any error the mesh is
// left exactly as it was. The declared count deltas keep the
// Euler–Poincaré identity V - E + F == 2*(S - G) + R satisfied.

// MVSF (make vertex, shell, face) bootstraps a new shell: one isolated
// vertex at p and one seed face with no boundary. ΔV=+1, ΔF=+1, ΔS=+1.
func (m *Mesh) MVSF(p geom.Vec3) (*Vertex, *Face) {
	v := m.newVertex(p)
	f := m.newFace()
	m.shells++
	return v, f
}

// MEV (make edge, vertex) grows the boundary of f with a spur from u to
// a new vertex at p. The new edge has both face slots on f and is
// traversed twice by f's walk. ΔV=+1, ΔE=+1.
func (m *Mesh) MEV(u *Vertex, p geom.Vec3, f *Face) (*Edge, error) {
	if err := m.checkVertex(u, "MEV source"); err != nil {
		return nil, err
	}
	if err := m.checkFace(f, "MEV"); err != nil {
		return nil, err
	}

	if u.Edge == nil {
		// Seed vertex of a fresh shell: the face must still be empty.
		if f.Edge != nil {
			return nil, topologyViolation("MEV vertex is not on the face boundary", u.Id)
		}
		w := m.newVertex(p)
		e := m.newEdge(u, w)
		e.F1, e.F2 = f, f
		e.PrevV1F1, e.NextV1F1 = e, e
		e.PrevV2F2, e.NextV2F2 = e, e
		u.Edge = e
		w.Edge = e
		f.Edge = e
		f.refreshNormal()
		return e, nil
	}

	if f.Edge == nil {
		return nil, topologyViolation("MEV vertex is not on the face boundary", u.Id)
	}
	sides, err := m.faceSides(f)
	if err != nil {
		return nil, err
	}
	// The spur is inserted at the corner of f where the walk arrives at
	// u; prefer the corner formed by u's own incident-edge handle so the
	// new edge lands just after it in u's cycle.
	arrival := -1
	for i, s := range sides {
		if s.end() != u {
			continue
		}
		if s.edge == u.Edge {
			arrival = i
			break
		}
		if arrival == -1 {
			arrival = i
		}
	}
	if arrival == -1 {
		return nil, topologyViolation("MEV vertex is not on the face boundary", u.Id)
	}
	sIn := sides[arrival]
	sOut := sides[(arrival+1)%len(sides)]

	w := m.newVertex(p)
	e := m.newEdge(u, w)
	e.F1, e.F2 = f, f
	// Bounce at the valence-1 endpoint: the outbound pass is followed
	// directly by the inbound one.
	e.NextV1F1 = e
	e.PrevV2F2 = e
	e.PrevV1F1 = sIn.edge
	e.NextV2F2 = sOut.edge
	sIn.setNext(e)
	sOut.setPrev(e)
	w.Edge = e
	f.refreshNormal()
	return e, nil
}

// MEF (make edge, face) closes a chord from a to b across f, splitting
// its boundary cycle in two. The old face keeps the cycle entered through
// the chord's a→b traversal; the other cycle moves to the new face.
// Following the canonical tie-break, occurrences of a and b are the first
// ones met walking from f's boundary-edge handle. ΔE=+1, ΔF=+1.
func (m *Mesh) MEF(a, b *Vertex, f *Face) (*Edge, error) {
	if err := m.checkVertex(a, "MEF first"); err != nil {
		return nil, err
	}
	if err := m.checkVertex(b, "MEF second"); err != nil {
		return nil, err
	}
	if err := m.checkFace(f, "MEF"); err != nil {
		return nil, err
	}
	if a == b {
		return nil, badArgument("MEF endpoints are the same vertex")
	}
	if f.Edge == nil {
		return nil, topologyViolation("MEF face has no boundary", f.Id)
	}
	sides, err := m.faceSides(f)
	if err != nil {
		return nil, err
	}
	ia, ib := -1, -1
	for i, s := range sides {
		if ia == -1 && s.start() == a {
			ia = i
		}
		if ib == -1 && s.start() == b {
			ib = i
		}
	}
	if ia == -1 {
		return nil, topologyViolation("MEF first vertex is not on the face boundary", a.Id)
	}
	if ib == -1 {
		return nil, topologyViolation("MEF second vertex is not on the face boundary", b.Id)
	}

	n := len(sides)
	sA := sides[ia]
	sB := sides[ib]
	sAprev := sides[(ia-1+n)%n]
	sBprev := sides[(ib-1+n)%n]

	e := m.newEdge(a, b)
	fNew := m.newFace()
	e.F1 = f
	e.F2 = fNew

	// f's cycle becomes chord(a→b) followed by sides[ib..ia-1]; fNew's
	// cycle becomes chord(b→a) followed by sides[ia..ib-1].
	e.PrevV1F1 = sAprev.edge
	e.NextV1F1 = sB.edge
	e.PrevV2F2 = sBprev.edge
	e.NextV2F2 = sA.edge

	for i := ia; i != ib; i = (i + 1) % n {
		sides[i].setFace(fNew)
	}

	sAprev.setNext(e)
	sB.setPrev(e)
	sBprev.setNext(e)
	sA.setPrev(e)

	f.Edge = e
	fNew.Edge = e
	f.refreshNormal()
	fNew.refreshNormal()
	return e, nil
}

// KEF (kill edge, face) removes an edge between two distinct faces and
// merges the second face into the first, splicing the two boundary
// cycles together. Inverse of MEF. When the edge borders only one face
// the boundary variant applies: both the edge and that face are removed
// and the dead face handle is returned for inspection. ΔE=-1, ΔF=-1.
func (m *Mesh) KEF(e *Edge) (*Face, error) {
	if err := m.checkEdge(e, "KEF"); err != nil {
		return nil, err
	}
	f1, f2 := e.F1, e.F2
	switch {
	case f1 != nil && f2 != nil && f1 != f2:
		return m.kefInterior(e, f1, f2)
	case f1 != nil && f2 != nil:
		return nil, topologyViolation("KEF edge is a dangling spur", e.Id)
	case f1 == nil && f2 == nil:
		return nil, topologyViolation("KEF edge borders no face", e.Id)
	case f1 != nil:
		return m.kefBoundary(e, f1)
	default:
		return m.kefBoundary(e, f2)
	}
}

func (m *Mesh) kefInterior(e *Edge, survivor, dead *Face) (*Face, error) {
	if e.PrevV1F1 == nil || e.NextV1F1 == nil || e.PrevV2F2 == nil || e.NextV2F2 == nil {
		return nil, inconsistency("KEF edge is missing wings", e.Id)
	}
	// Resolve the four neighbour sides before touching anything; each of
	// them holds the one wing slot that points back at e.
	pa, err := sideEnding(e.PrevV1F1, survivor, e.V1)
	if err != nil {
		return nil, err
	}
	na, err := sideFrom(e.NextV1F1, survivor, e.V2)
	if err != nil {
		return nil, err
	}
	pb, err := sideEnding(e.PrevV2F2, dead, e.V2)
	if err != nil {
		return nil, err
	}
	nb, err := sideFrom(e.NextV2F2, dead, e.V1)
	if err != nil {
		return nil, err
	}

	// Splice the two cycles into one across the removed chord.
	pa.setNext(nb.edge)
	nb.setPrev(pa.edge)
	pb.setNext(na.edge)
	na.setPrev(pb.edge)

	// Absorb the dead face. Index loop over the pool snapshot so the
	// sweep is safe against any future pool reshaping.
	for i := 0; i < len(m.edges); i++ {
		g := m.edges[i]
		if g.F1 == dead {
			g.F1 = survivor
		}
		if g.F2 == dead {
			g.F2 = survivor
		}
	}
	survivor.Rings += dead.Rings

	if survivor.Edge == e {
		survivor.Edge = pa.edge
	}
	if e.V1.Edge == e {
		e.V1.Edge = pa.edge
	}
	if e.V2.Edge == e {
		e.V2.Edge = na.edge
	}

	m.removeEdge(e)
	m.removeFace(dead)
	survivor.refreshNormal()
	return survivor, nil
}

func (m *Mesh) kefBoundary(e *Edge, dead *Face) (*Face, error) {
	// The lone face dies with the edge. Every other edge bordering it
	// becomes open on that side: face slot and wing pair cleared.
	for i := 0; i < len(m.edges); i++ {
		g := m.edges[i]
		if g == e {
			continue
		}
		if g.F1 == dead {
			g.F1 = nil
			g.PrevV1F1 = nil
			g.NextV1F1 = nil
		}
		if g.F2 == dead {
			g.F2 = nil
			g.PrevV2F2 = nil
			g.NextV2F2 = nil
		}
	}
	if e.V1.Edge == e {
		e.V1.Edge = m.anyIncidentEdgeBut(e.V1, e)
	}
	if e.V2.Edge == e {
		e.V2.Edge = m.anyIncidentEdgeBut(e.V2, e)
	}
	m.removeEdge(e)
	m.removeFace(dead)
	return dead, nil
}

func (m *Mesh) anyIncidentEdgeBut(v *Vertex, skip *Edge) *Edge {
	for _, g := range m.edges {
		if g != skip && (g.V1 == v || g.V2 == v) {
			return g
		}
	}
	return nil
}

// KFMRH (kill face, make ring hole) deletes an inner face and hands its
// boundary loop to the outer face as a ring, raising the shell's genus.
// The hole's loop keeps its own wiring; it is simply no longer reachable
// from the outer face's boundary-edge handle. ΔF=-1, ΔG=+1, ΔR=+1.
func (m *Mesh) KFMRH(h, f *Face) (*Face, error) {
	if err := m.checkFace(h, "KFMRH hole"); err != nil {
		return nil, err
	}
	if err := m.checkFace(f, "KFMRH outer"); err != nil {
		return nil, err
	}
	if h == f {
		return nil, badArgument("KFMRH hole and outer face are the same")
	}
	if h.Edge == nil {
		return nil, badArgument("KFMRH hole face has no boundary")
	}
	if f.Edge == nil {
		return nil, badArgument("KFMRH outer face has no boundary")
	}
	holeSides, err := m.faceSides(h)
	if err != nil {
		return nil, err
	}
	for _, s := range holeSides {
		if s.edge.ReferencesFace(f) {
			return nil, topologyViolation("KFMRH hole touches the outer boundary", s.edge.Id)
		}
	}
	if !m.sameShell(h.Edge, f.Edge) {
		return nil, badArgument("KFMRH faces lie in different shells")
	}

	for i := 0; i < len(m.edges); i++ {
		g := m.edges[i]
		if g.F1 == h {
			g.F1 = f
		}
		if g.F2 == h {
			g.F2 = f
		}
	}
	m.removeFace(h)
	f.Rings++
	m.genus++
	m.rings++
	f.refreshNormal()
	return f, nil
}

// sameShell floods the wing graph from a and reports whether b is in the
// same connected component.
func (m *Mesh) sameShell(a, b *Edge) bool {
	if a == b {
		return true
	}
	visited := map[int]bool{a.Id: true}
	stack := []*Edge{a}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e == b {
			return true
		}
		for _, w := range [4]*Edge{e.PrevV1F1, e.NextV1F1, e.PrevV2F2, e.NextV2F2} {
			if w != nil && !visited[w.Id] {
				visited[w.Id] = true
				stack = append(stack, w)
			}
		}
	}
	return false
}
