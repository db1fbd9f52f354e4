package wingmesh

import (
	"math"
	"strconv"

	"github.com/nat-n/geom"
)

// DefaultTolerance is the position-identity tolerance used by the
// primitive constructors.
const DefaultTolerance = 1e-9

// positionKey quantizes a position onto the tolerance grid so vertices
// can be deduplicated by identity.
type positionKey [3]int64

func quantize(p geom.Vec3, tol float64) positionKey {
	return positionKey{
		int64(math.Round(p.X / tol)),
		int64(math.Round(p.Y / tol)),
		int64(math.Round(p.Z / tol)),
	}
}

// edgeKey identifies an edge by its unordered endpoint id pair. Two soup
// faces share an edge when they name the same pair in opposite
// directions.
type edgeKey [2]int

func pairKey(a, b *Vertex) edgeKey {
	if a.Id < b.Id {
		return edgeKey{a.Id, b.Id}
	}
	return edgeKey{b.Id, a.Id}
}

// soupBuilder accumulates the Euler-operator translation of a polygon
// soup. The surface under construction is always a disk (plus the
// ambient face); each added face must attach to it along one contiguous
// run of existing vertices and edges, walked in its own orientation.
type soupBuilder struct {
	mesh  *Mesh
	tol   float64
	verts map[positionKey]*Vertex
	edges map[edgeKey]*Edge
	outer *Face
	faces []*Face
}

// FromPolygons builds a mesh by translating each polygon of the soup
// into MVSF/MEV/MEF calls. A position that rounds to the same point of
// the tol grid as an earlier vertex reuses it (two positions closer than
// tol but on either side of a grid cell boundary are not merged);
// consecutive position pairs matching an existing edge
// reuse it, provided the new face traverses it opposite to its creator.
// The final face of a closed solid consumes the ambient face, so a
// closed soup of n polygons yields exactly n faces.
func FromPolygons(polys [][]geom.Vec3, tol float64) (*Mesh, []*Face, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	b := &soupBuilder{
		mesh:  New(),
		tol:   tol,
		verts: make(map[positionKey]*Vertex),
		edges: make(map[edgeKey]*Edge),
	}
	for i, poly := range polys {
		if err := b.addPolygon(poly); err != nil {
			if ke, ok := err.(*KernelError); ok {
				ke.Msg = "polygon " + strconv.Itoa(i) + ": " + ke.Msg
			}
			return nil, nil, err
		}
	}
	return b.mesh, b.faces, nil
}

func (b *soupBuilder) addPolygon(poly []geom.Vec3) error {
	n := len(poly)
	if n < 3 {
		return badArgument("a face needs at least three vertices")
	}
	if b.outer == nil && b.mesh.VertexCount() > 0 {
		return topologyViolation("the surface is already closed", 0)
	}

	verts := make([]*Vertex, n)
	for i, p := range poly {
		verts[i] = b.verts[quantize(p, b.tol)]
	}
	hasEdge := make([]bool, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if verts[i] != nil && verts[j] != nil {
			hasEdge[i] = b.edges[pairKey(verts[i], verts[j])] != nil
		}
	}

	if b.mesh.VertexCount() == 0 {
		return b.addFirstPolygon(poly, verts)
	}

	existing := 0
	for _, ok := range hasEdge {
		if ok {
			existing++
		}
	}
	if existing == n {
		return b.closeFinalPolygon(poly, verts)
	}

	s, err := b.findRun(poly, verts, hasEdge, existing)
	if err != nil {
		return err
	}
	t := (s + existing) % n

	// The run must lie on the ambient boundary in the polygon's own
	// orientation; a same-direction duplicate would be a third face on
	// the edge or an inconsistently wound soup.
	for j := 0; j < existing; j++ {
		i := (s + j) % n
		g := b.edges[pairKey(verts[i], verts[(i+1)%n])]
		if _, err := sideFrom(g, b.outer, verts[i]); err != nil {
			return topologyViolation("shared edge is wound the same way as its first face", g.Id)
		}
	}

	// Grow the new boundary chain from the run's end, then close the
	// chord back to its start, splitting the ambient face.
	cur := verts[t]
	for j := 1; j < n-existing; j++ {
		c := (t + j) % n
		e, err := b.mesh.MEV(cur, poly[c], b.outer)
		if err != nil {
			return err
		}
		verts[c] = e.V2
		b.verts[quantize(poly[c], b.tol)] = e.V2
		b.edges[pairKey(cur, e.V2)] = e
		cur = e.V2
	}
	chord, err := b.mesh.MEF(cur, verts[s], b.outer)
	if err != nil {
		return err
	}
	b.edges[pairKey(cur, verts[s])] = chord

	face := b.outer // MEF leaves the chord's a→b cycle on the passed face
	b.outer = chord.F2
	b.faces = append(b.faces, face)
	assert("soup face has the requested arity", func() bool {
		vs, err := b.mesh.BoundaryVertices(face)
		return err == nil && len(vs) == n
	})
	return nil
}

func (b *soupBuilder) addFirstPolygon(poly []geom.Vec3, verts []*Vertex) error {
	n := len(poly)
	v0, f := b.mesh.MVSF(poly[0])
	verts[0] = v0
	b.verts[quantize(poly[0], b.tol)] = v0
	cur := v0
	for i := 1; i < n; i++ {
		e, err := b.mesh.MEV(cur, poly[i], f)
		if err != nil {
			return err
		}
		verts[i] = e.V2
		b.verts[quantize(poly[i], b.tol)] = e.V2
		b.edges[pairKey(cur, e.V2)] = e
		cur = e.V2
	}
	chord, err := b.mesh.MEF(cur, v0, f)
	if err != nil {
		return err
	}
	b.edges[pairKey(cur, v0)] = chord
	b.outer = chord.F2
	b.faces = append(b.faces, f)
	return nil
}

// closeFinalPolygon handles the last face of a closed solid: every edge
// already exists, so the face is the ambient face itself. Verified
// against the requested boundary before being adopted.
func (b *soupBuilder) closeFinalPolygon(poly []geom.Vec3, verts []*Vertex) error {
	n := len(poly)
	walk, err := b.mesh.BoundaryVertices(b.outer)
	if err != nil {
		return err
	}
	if len(walk) != n {
		return topologyViolation("closing face does not match the remaining boundary", b.outer.Id)
	}
	offset := -1
	for i, v := range walk {
		if v == verts[0] {
			offset = i
			break
		}
	}
	if offset == -1 {
		return topologyViolation("closing face does not match the remaining boundary", b.outer.Id)
	}
	for i := 0; i < n; i++ {
		if walk[(offset+i)%n] != verts[i] {
			return topologyViolation("closing face does not match the remaining boundary", b.outer.Id)
		}
	}
	face := b.outer
	face.refreshNormal()
	b.faces = append(b.faces, face)
	b.outer = nil
	return nil
}

// findRun locates the start corner of the contiguous run of existing
// edges and rejects polygons whose existing pieces are scattered.
func (b *soupBuilder) findRun(poly []geom.Vec3, verts []*Vertex, hasEdge []bool, existing int) (int, error) {
	n := len(poly)
	if existing == 0 {
		// A face touching the surface at vertices alone would pinch the
		// disk into a bow-tie; only edge-run attachment keeps it manifold.
		return 0, topologyViolation("face shares no edge with the surface under construction", 0)
	}
	s := -1
	for i := 0; i < n; i++ {
		if hasEdge[i] && !hasEdge[(i-1+n)%n] {
			if s != -1 {
				return 0, topologyViolation("face shares non-contiguous edge runs with the surface", 0)
			}
			s = i
		}
	}
	if s == -1 {
		// all true is handled by the caller
		return 0, topologyViolation("face shares non-contiguous edge runs with the surface", 0)
	}
	// every pre-existing corner must lie on the run
	onRun := make([]bool, n)
	for j := 0; j <= existing; j++ {
		onRun[(s+j)%n] = true
	}
	for i, v := range verts {
		if v != nil && !onRun[i] {
			return 0, topologyViolation("face touches the surface outside its shared run", v.Id)
		}
	}
	return s, nil
}
