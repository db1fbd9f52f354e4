package wingmesh

// Navigation queries are pure: they read the adjacency graph and
// terminate on any mesh, valid or not. When a walk detects that it is
// revisiting entities without having closed its cycle it reports an
// inconsistency instead of looping.

// startSide picks the canonical first traversal of a face walk: the side
// of the face's boundary-edge handle, preferring side 1 when the edge is
// a spur owned twice by the same face.
func startSide(f *Face) (side, error) {
	e := f.Edge
	if e.F1 == f {
		return side{e, 1}, nil
	}
	if e.F2 == f {
		return side{e, 2}, nil
	}
	return side{}, inconsistency("face boundary edge does not reference the face", f.Id)
}

// faceSides collects the full boundary cycle of f as an ordered side
// sequence, beginning at the canonical start side. A face with no
// boundary yields nil.
func (m *Mesh) faceSides(f *Face) ([]side, error) {
	if f.Edge == nil {
		return nil, nil
	}
	first, err := startSide(f)
	if err != nil {
		return nil, err
	}
	sides := []side{first}
	limit := 2 * len(m.edges)
	cur := first
	for {
		nextEdge := cur.next()
		if nextEdge == nil {
			return nil, inconsistency("face walk hit a nil wing", cur.edge.Id)
		}
		if nextEdge.removed {
			return nil, inconsistency("face walk reached a removed edge", nextEdge.Id)
		}
		ns, err := sideFrom(nextEdge, f, cur.end())
		if err != nil {
			return nil, err
		}
		if ns == first {
			return sides, nil
		}
		sides = append(sides, ns)
		if len(sides) > limit {
			return nil, inconsistency("face walk did not close", f.Id)
		}
		cur = ns
	}
}

// BoundaryEdges returns the edges of f's boundary walk in traversal
// order, starting from f's boundary-edge handle. A spur appears twice,
// once per direction, matching the walk itself. Inner ring loops created
// by KFMRH are not reachable from the handle and are not included.
func (m *Mesh) BoundaryEdges(f *Face) ([]*Edge, error) {
	if err := m.checkFace(f, "query"); err != nil {
		return nil, err
	}
	sides, err := m.faceSides(f)
	if err != nil {
		return nil, err
	}
	edges := make([]*Edge, len(sides))
	for i, s := range sides {
		edges[i] = s.edge
	}
	return edges, nil
}

// BoundaryVertices returns the vertices of f's walk in traversal order:
// for each edge the endpoint the walk departs from, V1 on the F1 side
// and V2 on the F2 side.
func (m *Mesh) BoundaryVertices(f *Face) ([]*Vertex, error) {
	if err := m.checkFace(f, "query"); err != nil {
		return nil, err
	}
	sides, err := m.faceSides(f)
	if err != nil {
		return nil, err
	}
	verts := make([]*Vertex, len(sides))
	for i, s := range sides {
		verts[i] = s.start()
	}
	return verts, nil
}

// IncidentEdges returns the edges around v in rotational order, starting
// from v's incident-edge handle. On a vertex whose star was opened by a
// boundary KEF the cycle is broken; the walk then covers the remainder of
// the fan backwards from the start handle so every incident edge with
// intact wings is still reported exactly once.
func (m *Mesh) IncidentEdges(v *Vertex) ([]*Edge, error) {
	if err := m.checkVertex(v, "query"); err != nil {
		return nil, err
	}
	if v.Edge == nil {
		return nil, nil
	}
	if !v.Edge.ReferencesVertex(v) {
		return nil, inconsistency("vertex incident-edge handle is not incident to it", v.Id)
	}

	result := []*Edge{v.Edge}
	seen := map[int]bool{v.Edge.Id: true}
	closed := false
	for e := nextAroundVertex(v.Edge, v); e != nil; e = nextAroundVertex(e, v) {
		if e == v.Edge {
			closed = true
			break
		}
		if e.removed || !e.ReferencesVertex(v) {
			return nil, inconsistency("vertex cycle reached an edge not incident to the vertex", e.Id)
		}
		if seen[e.Id] {
			return nil, inconsistency("vertex cycle revisited an edge before closing", e.Id)
		}
		seen[e.Id] = true
		result = append(result, e)
		if len(result) > len(m.edges) {
			return nil, inconsistency("vertex cycle exceeds the edge count", v.Id)
		}
	}
	if !closed {
		for e := prevAroundVertex(v.Edge, v); e != nil; e = prevAroundVertex(e, v) {
			if e.removed || !e.ReferencesVertex(v) {
				return nil, inconsistency("vertex cycle reached an edge not incident to the vertex", e.Id)
			}
			if seen[e.Id] {
				return nil, inconsistency("vertex fan revisited an edge", e.Id)
			}
			seen[e.Id] = true
			result = append([]*Edge{e}, result...)
			if len(result) > len(m.edges) {
				return nil, inconsistency("vertex fan exceeds the edge count", v.Id)
			}
		}
	}
	return result, nil
}

// IncidentFaces returns the faces around v, deduplicated by id, in the
// order their edges appear in the incident cycle.
func (m *Mesh) IncidentFaces(v *Vertex) ([]*Face, error) {
	edges, err := m.IncidentEdges(v)
	if err != nil {
		return nil, err
	}
	var faces []*Face
	seen := make(map[int]bool)
	for _, e := range edges {
		if e.F1 != nil && !seen[e.F1.Id] {
			seen[e.F1.Id] = true
			faces = append(faces, e.F1)
		}
		if e.F2 != nil && !seen[e.F2.Id] {
			seen[e.F2.Id] = true
			faces = append(faces, e.F2)
		}
	}
	return faces, nil
}
