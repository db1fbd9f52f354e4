package wingmesh

import (
	"go.uber.org/multierr"
)

// Structural validation: a read-only O(V+E+F) pass over the pools that
// asserts referential closure, endpoint consistency, boundary-cycle
// closure and wing symmetry. It reports the first offending entity and
// never repairs anything.

// Validate checks the structural invariants and returns nil on success
// or an inconsistency error naming the first offender.
func (m *Mesh) Validate() error {
	for _, v := range m.vertices {
		if v.mesh != m || v.removed {
			return inconsistency("vertex pool holds a foreign or removed vertex", v.Id)
		}
		if v.Edge != nil {
			if v.Edge.mesh != m || v.Edge.removed {
				return inconsistency("vertex references a dead incident edge", v.Id)
			}
			if !v.Edge.ReferencesVertex(v) {
				return inconsistency("vertex incident edge does not end at it", v.Id)
			}
		}
	}

	for _, e := range m.edges {
		if e.mesh != m || e.removed {
			return inconsistency("edge pool holds a foreign or removed edge", e.Id)
		}
		if e.V1 == nil || e.V2 == nil {
			return inconsistency("edge is missing an endpoint", e.Id)
		}
		if e.V1 == e.V2 {
			return inconsistency("edge endpoints coincide", e.Id)
		}
		if e.V1.removed || e.V2.removed || e.V1.mesh != m || e.V2.mesh != m {
			return inconsistency("edge references a dead endpoint", e.Id)
		}
		if err := m.checkEdgeSide(e, side{e, 1}); err != nil {
			return err
		}
		if err := m.checkEdgeSide(e, side{e, 2}); err != nil {
			return err
		}
	}

	for _, f := range m.faces {
		if f.mesh != m || f.removed {
			return inconsistency("face pool holds a foreign or removed face", f.Id)
		}
		if f.Edge == nil {
			continue
		}
		if f.Edge.mesh != m || f.Edge.removed {
			return inconsistency("face references a dead boundary edge", f.Id)
		}
		if !f.Edge.ReferencesFace(f) {
			return inconsistency("face boundary edge does not border it", f.Id)
		}
		if err := m.checkFaceCycle(f); err != nil {
			return err
		}
	}
	return nil
}

// checkEdgeSide verifies one side of an edge: a set face slot comes with
// a fully wired wing pair pointing at live edges that point back, and a
// clear slot comes with a clear pair.
func (m *Mesh) checkEdgeSide(e *Edge, s side) error {
	f := s.face()
	if f == nil {
		if s.next() != nil || s.prev() != nil {
			return inconsistency("edge has wings on a faceless side", e.Id)
		}
		return nil
	}
	if f.mesh != m || f.removed {
		return inconsistency("edge references a dead face", e.Id)
	}
	next, prev := s.next(), s.prev()
	if next == nil || prev == nil {
		return inconsistency("edge side with a face is missing wings", e.Id)
	}
	if next.removed || prev.removed || next.mesh != m || prev.mesh != m {
		return inconsistency("edge wing references a dead edge", e.Id)
	}
	ns, err := sideFrom(next, f, s.end())
	if err != nil {
		return err
	}
	if ns.prev() != e {
		return inconsistency("successor wing does not point back", e.Id)
	}
	ps, err := sideEnding(prev, f, s.start())
	if err != nil {
		return err
	}
	if ps.next() != e {
		return inconsistency("predecessor wing does not point back", e.Id)
	}
	return nil
}

// checkFaceCycle verifies that the walk from the face's handle closes,
// that the reverse walk retraces it, and that the walk accounts for
// every side referencing the face (except the ring loops a KFMRH has
// detached from the handle).
func (m *Mesh) checkFaceCycle(f *Face) error {
	forward, err := m.faceSides(f)
	if err != nil {
		return err
	}
	sideCount := 0
	for _, e := range m.edges {
		if e.F1 == f {
			sideCount++
		}
		if e.F2 == f {
			sideCount++
		}
	}
	if f.Rings == 0 && sideCount != len(forward) {
		return inconsistency("face walk does not cover all its edges", f.Id)
	}
	if f.Rings > 0 && sideCount < len(forward)+f.Rings {
		return inconsistency("ringed face has fewer sides than loops", f.Id)
	}

	k := len(forward)
	cur := forward[0]
	for i := 1; i <= k; i++ {
		prevEdge := cur.prev()
		if prevEdge == nil {
			return inconsistency("face reverse walk hit a nil wing", cur.edge.Id)
		}
		ps, err := sideEnding(prevEdge, f, cur.start())
		if err != nil {
			return err
		}
		if ps != forward[(k-i)%k] {
			return inconsistency("face reverse walk diverges from the forward walk", f.Id)
		}
		cur = ps
	}
	return nil
}

// IsManifold reports whether the surface is a 2-manifold: every edge
// with two faces has two distinct ones, and every vertex's star is one
// closed cycle covering its full degree. Isolated vertices pass; spurs
// and boundary residue do not.
func (m *Mesh) IsManifold() bool {
	return m.manifoldViolation() == nil
}

func (m *Mesh) manifoldViolation() error {
	for _, e := range m.edges {
		if e.F1 != nil && e.F2 != nil && e.F1 == e.F2 {
			return inconsistency("edge has the same face on both sides", e.Id)
		}
		if e.F1 == nil || e.F2 == nil {
			return inconsistency("edge does not separate two faces", e.Id)
		}
	}
	for _, v := range m.vertices {
		degree := v.Degree()
		if v.Edge == nil {
			if degree != 0 {
				return inconsistency("vertex has edges but no incident handle", v.Id)
			}
			continue
		}
		star, err := m.IncidentEdges(v)
		if err != nil {
			return err
		}
		if len(star) != degree {
			return inconsistency("vertex star does not form a single cycle", v.Id)
		}
		// the walk must have closed, not merely swept an open fan
		last := star[len(star)-1]
		if nextAroundVertex(last, v) != star[0] {
			return inconsistency("vertex star does not close", v.Id)
		}
	}
	return nil
}

// Diagnose runs the structural validation and the manifold predicate and
// combines whatever they report into one error value.
func (m *Mesh) Diagnose() error {
	return multierr.Combine(m.Validate(), m.manifoldViolation())
}
