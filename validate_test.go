package wingmesh

import (
	"testing"

	"github.com/nat-n/geom"
)

func TestValidateEmptyMesh(t *testing.T) {
	m := New()
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !m.IsManifold() {
		t.Fatal("empty mesh must be manifold")
	}
	checkCounts(t, m, 0, 0, 0)
}

func TestValidateAfterEachOperator(t *testing.T) {
	m := New()
	v1, f := m.MVSF(geom.Vec3{0, 0, 0})
	if err := m.Validate(); err != nil {
		t.Fatalf("after MVSF: %v", err)
	}
	e1, err := m.MEV(v1, geom.Vec3{1, 0, 0}, f)
	if err != nil {
		t.Fatalf("MEV: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("after MEV: %v", err)
	}
	e2, err := m.MEV(e1.V2, geom.Vec3{1, 1, 0}, f)
	if err != nil {
		t.Fatalf("MEV: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("after second MEV: %v", err)
	}
	chord, err := m.MEF(e2.V2, v1, f)
	if err != nil {
		t.Fatalf("MEF: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("after MEF: %v", err)
	}
	if _, err := m.KEF(chord); err != nil {
		t.Fatalf("KEF: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("after KEF: %v", err)
	}
}

func TestValidateDetectsBrokenWing(t *testing.T) {
	m, _, edges, _ := buildTriangle(t)
	edges[0].NextV1F1 = edges[0]
	err := m.Validate()
	if !IsKind(err, Inconsistency) {
		t.Fatalf("broken wing: got %v", err)
	}
}

func TestValidateDetectsDanglingFaceSlot(t *testing.T) {
	m, _, edges, _ := buildTriangle(t)
	rogue := &Face{Id: 99, mesh: m}
	edges[0].F1 = rogue
	rogue.removed = true
	if err := m.Validate(); !IsKind(err, Inconsistency) {
		t.Fatalf("dangling face slot: got %v", err)
	}
}

func TestValidateDetectsCoincidentEndpoints(t *testing.T) {
	m, verts, edges, _ := buildTriangle(t)
	edges[0].V2 = verts[0] // same as V1
	if err := m.Validate(); !IsKind(err, Inconsistency) {
		t.Fatalf("coincident endpoints: got %v", err)
	}
}

func TestManifoldRejectsSpur(t *testing.T) {
	m := New()
	u, f := m.MVSF(geom.Vec3{0, 0, 0})
	if _, err := m.MEV(u, geom.Vec3{1, 0, 0}, f); err != nil {
		t.Fatalf("MEV: %v", err)
	}
	// the spur validates structurally but is not a 2-manifold surface
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if m.IsManifold() {
		t.Fatal("a dangling spur must fail the manifold predicate")
	}
}

func TestManifoldRejectsOpenSheet(t *testing.T) {
	m, _, _ := openTriangle(t)
	if m.IsManifold() {
		t.Fatal("a sheet with boundary must fail the strict predicate")
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestManifoldCube(t *testing.T) {
	m, err := Cube(1)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	if !m.IsManifold() {
		t.Fatal("cube must be manifold")
	}
}

func TestDiagnoseCombinesFindings(t *testing.T) {
	m := New()
	u, f := m.MVSF(geom.Vec3{0, 0, 0})
	if _, err := m.MEV(u, geom.Vec3{1, 0, 0}, f); err != nil {
		t.Fatalf("MEV: %v", err)
	}
	// structurally fine, non-manifold: Diagnose must still report
	if err := m.Diagnose(); err == nil {
		t.Fatal("Diagnose must surface the manifold violation")
	}
	closed, err := Cube(1)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	if err := closed.Diagnose(); err != nil {
		t.Fatalf("Diagnose on a cube: %v", err)
	}
}
