package wingmesh

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/nat-n/geom"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m, err := Cube(2.0)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	var buf bytes.Buffer
	w := io.Writer(&buf)
	if err := m.Save(&w); err != nil {
		t.Fatalf("save: %v", err)
	}

	r := io.Reader(&buf)
	loaded, err := Load(&r)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	checkCounts(t, loaded, 8, 12, 6)
	if !loaded.IsManifold() {
		t.Fatal("loaded cube must be manifold")
	}
	if loaded.Shells() != m.Shells() || loaded.Genus() != m.Genus() || loaded.Rings() != m.Rings() {
		t.Fatal("bookkeeping counters did not survive the round trip")
	}

	// entity identity by id, positions and adjacency by cross-reference
	for _, v := range m.Vertices() {
		lv := loaded.VertexById(v.Id)
		if lv == nil {
			t.Fatalf("vertex %d missing after load", v.Id)
		}
		if lv.X != v.X || lv.Y != v.Y || lv.Z != v.Z {
			t.Fatalf("vertex %d moved across the round trip", v.Id)
		}
	}
	for _, e := range m.Edges() {
		le := loaded.EdgeById(e.Id)
		if le == nil {
			t.Fatalf("edge %d missing after load", e.Id)
		}
		if le.V1.Id != e.V1.Id || le.V2.Id != e.V2.Id {
			t.Fatalf("edge %d endpoints changed", e.Id)
		}
		if le.F1.Id != e.F1.Id || le.F2.Id != e.F2.Id {
			t.Fatalf("edge %d faces changed", e.Id)
		}
		if le.NextV1F1.Id != e.NextV1F1.Id || le.PrevV1F1.Id != e.PrevV1F1.Id ||
			le.NextV2F2.Id != e.NextV2F2.Id || le.PrevV2F2.Id != e.PrevV2F2.Id {
			t.Fatalf("edge %d wings changed", e.Id)
		}
	}
	for _, f := range m.Faces() {
		lf := loaded.FaceById(f.Id)
		if lf == nil {
			t.Fatalf("face %d missing after load", f.Id)
		}
		n, ln := f.Normal(), lf.Normal()
		if !approx(n.X, ln.X, 1e-12) || !approx(n.Y, ln.Y, 1e-12) || !approx(n.Z, ln.Z, 1e-12) {
			t.Fatalf("face %d normal changed", f.Id)
		}
	}
}

func TestLoadContinuesIdSequence(t *testing.T) {
	m, err := Cube(1.0)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	var buf bytes.Buffer
	w := io.Writer(&buf)
	if err := m.Save(&w); err != nil {
		t.Fatalf("save: %v", err)
	}
	r := io.Reader(&buf)
	loaded, err := Load(&r)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	maxV := 0
	for _, v := range loaded.Vertices() {
		if v.Id > maxV {
			maxV = v.Id
		}
	}
	nv, _ := loaded.MVSF(geom.Vec3{5, 5, 5})
	if nv.Id <= maxV {
		t.Fatalf("id %d reuses persisted id space (max %d)", nv.Id, maxV)
	}
}

func TestLoadRejectsForeignData(t *testing.T) {
	r := io.Reader(strings.NewReader(`{"magic":"something","version":1}`))
	if _, err := Load(&r); err == nil {
		t.Fatal("foreign magic must be rejected")
	}
	r = io.Reader(strings.NewReader(`{"magic":"wingmesh","version":99}`))
	if _, err := Load(&r); err == nil {
		t.Fatal("future version must be rejected")
	}
	r = io.Reader(strings.NewReader("not json"))
	if _, err := Load(&r); err == nil {
		t.Fatal("malformed stream must be rejected")
	}
}

func TestLoadValidatesWiring(t *testing.T) {
	// an edge that names a vertex the vertex table does not hold
	broken := `{"magic":"wingmesh","version":1,
		"vertices":[{"id":1,"x":0,"y":0,"z":0,"edge":0}],
		"edges":[{"id":1,"v1":1,"v2":7,"f1":0,"f2":0,"p1f1":0,"n1f1":0,"p2f2":0,"n2f2":0}],
		"faces":[]}`
	r := io.Reader(strings.NewReader(broken))
	if _, err := Load(&r); err == nil {
		t.Fatal("dangling reference must be rejected")
	}
}
