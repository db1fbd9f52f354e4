package wingmesh

import (
	"github.com/nat-n/gomesh/cuboid"
	"github.com/nat-n/gomesh/mesh"
	"github.com/nat-n/gomesh/triplebuffer"
)

// Interop with the gomesh triangle-soup representation: renderers and
// OBJ writers consume indexed triangle buffers, not adjacency graphs.

// ToTriangleMesh fan-triangulates the given faces (all faces when none
// are named) into a gomesh mesh. When exporting an open sheet the caller
// will usually name the real faces and leave out the ambient one, whose
// walk shadows the rest of the surface in reverse.
func (m *Mesh) ToTriangleMesh(name string, faces ...*Face) (*mesh.Mesh, error) {
	if len(faces) == 0 {
		faces = m.faces
	}
	gm := mesh.New(name)
	gm.Verts = triplebuffer.NewVertexBuffer()
	gm.Verts.Buffer = make([]float64, 0, len(m.vertices)*3)
	gm.Faces.Buffer = make([]int, 0, len(m.edges)*2*3)

	indexOf := make(map[*Vertex]int)
	for _, f := range faces {
		if err := m.checkFace(f, "export"); err != nil {
			return nil, err
		}
		verts, err := m.BoundaryVertices(f)
		if err != nil {
			return nil, err
		}
		if len(verts) < 3 {
			continue
		}
		for _, v := range verts {
			if _, seen := indexOf[v]; !seen {
				indexOf[v] = gm.Verts.Len()
				gm.Verts.Append(v.X, v.Y, v.Z)
			}
		}
		anchor := indexOf[verts[0]]
		for i := 1; i < len(verts)-1; i++ {
			gm.Faces.Append(anchor, indexOf[verts[i]], indexOf[verts[i+1]])
		}
	}
	return gm, nil
}

// BoundingBox returns the axis-aligned bounds of the whole mesh.
func (m *Mesh) BoundingBox() (*cuboid.Cuboid, error) {
	gm, err := m.ToTriangleMesh("bounds")
	if err != nil {
		return nil, err
	}
	return gm.BoundingBox(), nil
}
