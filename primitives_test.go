package wingmesh

import (
	"math"
	"testing"

	"github.com/nat-n/geom"
)

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestCubeCounts(t *testing.T) {
	m, err := Cube(1.0)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	checkCounts(t, m, 8, 12, 6)
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !m.IsManifold() {
		t.Fatal("cube must be manifold")
	}
}

func TestCubeNormalsAndAreas(t *testing.T) {
	m, err := Cube(2.0)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	for _, f := range m.Faces() {
		n := f.Normal()
		length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
		if !approx(length, 1.0, 1e-9) {
			t.Fatalf("face %d normal length = %v", f.Id, length)
		}
		axis := 0
		for _, c := range [3]float64{n.X, n.Y, n.Z} {
			if approx(math.Abs(c), 1.0, 1e-9) {
				axis++
			} else if !approx(c, 0.0, 1e-9) {
				t.Fatalf("face %d normal (%v,%v,%v) is not axis aligned", f.Id, n.X, n.Y, n.Z)
			}
		}
		if axis != 1 {
			t.Fatalf("face %d normal (%v,%v,%v) is not an axis unit vector", f.Id, n.X, n.Y, n.Z)
		}
		if !approx(f.Area(), 4.0, 1e-9) {
			t.Fatalf("face %d area = %v, want 4.0", f.Id, f.Area())
		}
	}
}

func TestCubeEdgeLengths(t *testing.T) {
	m, err := Cube(2.0)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	for _, e := range m.Edges() {
		if !approx(e.Length(), 2.0, 1e-9) {
			t.Fatalf("edge %d length = %v, want 2.0", e.Id, e.Length())
		}
	}
}

func TestPlaneCounts(t *testing.T) {
	m, err := Plane(1.0, 1.0)
	if err != nil {
		t.Fatalf("plane: %v", err)
	}
	checkCounts(t, m, 4, 4, 2)
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

// A CCW quad in the XY plane gets the +Z Newell normal and its plain
// area.
func TestQuadNormalAndArea(t *testing.T) {
	m, faces, err := FromPolygons([][]geom.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	}, 0)
	if err != nil {
		t.Fatalf("FromPolygons: %v", err)
	}
	if len(faces) != 1 {
		t.Fatalf("faces = %d, want 1", len(faces))
	}
	quad := faces[0]
	n := quad.Normal()
	if !approx(n.X, 0, 1e-9) || !approx(n.Y, 0, 1e-9) || !approx(n.Z, 1, 1e-9) {
		t.Fatalf("quad normal = (%v,%v,%v), want (0,0,1)", n.X, n.Y, n.Z)
	}
	if !approx(quad.Area(), 1.0, 1e-9) {
		t.Fatalf("quad area = %v, want 1.0", quad.Area())
	}
	// the ambient face walks the same loop backwards
	ambient := quad.Edge.OtherFace(quad)
	an := ambient.Normal()
	if !approx(an.Z, -1, 1e-9) {
		t.Fatalf("ambient normal Z = %v, want -1", an.Z)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSoupSharesEdgesAndVertices(t *testing.T) {
	m, faces, err := FromPolygons([][]geom.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	}, 1e-9)
	if err != nil {
		t.Fatalf("FromPolygons: %v", err)
	}
	if len(faces) != 2 {
		t.Fatalf("faces = %d, want 2", len(faces))
	}
	checkCounts(t, m, 4, 5, 3)
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	// the diagonal is shared: exactly one edge borders both triangles
	shared := 0
	for _, e := range m.Edges() {
		if e.ReferencesFace(faces[0]) && e.ReferencesFace(faces[1]) {
			shared++
		}
	}
	if shared != 1 {
		t.Fatalf("shared edges = %d, want 1", shared)
	}
}

func TestSoupToleranceDeduplication(t *testing.T) {
	m, _, err := FromPolygons([][]geom.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{1, 1e-12, 0}, {1, 1, 0}, {-1e-12, 1, 0}},
	}, 1e-9)
	if err != nil {
		t.Fatalf("FromPolygons: %v", err)
	}
	if m.VertexCount() != 4 {
		t.Fatalf("vertices = %d, want 4 (tolerance dedupe)", m.VertexCount())
	}
}

func TestSoupRejectsDisconnectedFace(t *testing.T) {
	_, _, err := FromPolygons([][]geom.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{10, 0, 0}, {11, 0, 0}, {10, 1, 0}},
	}, 1e-9)
	if !IsKind(err, TopologyViolation) {
		t.Fatalf("disconnected soup: got %v", err)
	}
}

func TestSoupRejectsInconsistentWinding(t *testing.T) {
	_, _, err := FromPolygons([][]geom.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	}, 1e-9)
	if !IsKind(err, TopologyViolation) {
		t.Fatalf("same-direction shared edge: got %v", err)
	}
}

func TestSoupRejectsDegenerateFace(t *testing.T) {
	_, _, err := FromPolygons([][]geom.Vec3{
		{{0, 0, 0}, {1, 0, 0}},
	}, 1e-9)
	if !IsKind(err, BadArgument) {
		t.Fatalf("two-vertex face: got %v", err)
	}
}

func TestScaleAndCenter(t *testing.T) {
	m, err := Cube(2.0)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	if err := m.ScaleAndCenter(1.0); err != nil {
		t.Fatalf("ScaleAndCenter: %v", err)
	}
	for _, v := range m.Vertices() {
		for _, c := range [3]float64{v.X, v.Y, v.Z} {
			if !approx(math.Abs(c), 0.5, 1e-9) {
				t.Fatalf("vertex %d coordinate %v, want ±0.5", v.Id, c)
			}
		}
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestExportTriangleMesh(t *testing.T) {
	m, err := Cube(1.0)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	gm, err := m.ToTriangleMesh("cube")
	if err != nil {
		t.Fatalf("ToTriangleMesh: %v", err)
	}
	if gm.Verts.Len() != 8 {
		t.Fatalf("exported vertices = %d, want 8", gm.Verts.Len())
	}
	if gm.Faces.Len() != 12 {
		t.Fatalf("exported triangles = %d, want 12 (two per quad)", gm.Faces.Len())
	}
}
