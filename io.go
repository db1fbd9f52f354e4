package wingmesh

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strconv"
)

// Persistence: a versioned JSON stream holding the three entity tables
// as (id, payload) records, cross-referenced by id, with 0 standing for
// an absent handle. Loading rebuilds the pools, rewires everything and
// validates before handing the mesh back.

const (
	meshFileMagic   = "wingmesh"
	meshFileVersion = 1
)

type vertexRecord struct {
	Id   int     `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Edge int     `json:"edge"`
}

type edgeRecord struct {
	Id    int `json:"id"`
	V1    int `json:"v1"`
	V2    int `json:"v2"`
	F1    int `json:"f1"`
	F2    int `json:"f2"`
	PV1F1 int `json:"p1f1"`
	NV1F1 int `json:"n1f1"`
	PV2F2 int `json:"p2f2"`
	NV2F2 int `json:"n2f2"`
}

type faceRecord struct {
	Id    int `json:"id"`
	Edge  int `json:"edge"`
	Rings int `json:"rings"`
}

type meshFileSchema struct {
	Magic    string         `json:"magic"`
	Version  int            `json:"version"`
	Shells   int            `json:"shells"`
	Genus    int            `json:"genus"`
	Rings    int            `json:"rings"`
	NextVId  int            `json:"next_vertex_id"`
	NextEId  int            `json:"next_edge_id"`
	NextFId  int            `json:"next_face_id"`
	Vertices []vertexRecord `json:"vertices"`
	Edges    []edgeRecord   `json:"edges"`
	Faces    []faceRecord   `json:"faces"`
}

// Save serializes the mesh as JSON into the given writer.
func (m *Mesh) Save(mesh_writer *io.Writer) (err error) {
	parsed_data := meshFileSchema{
		Magic:    meshFileMagic,
		Version:  meshFileVersion,
		Shells:   m.shells,
		Genus:    m.genus,
		Rings:    m.rings,
		NextVId:  m.nextVId,
		NextEId:  m.nextEId,
		NextFId:  m.nextFId,
		Vertices: make([]vertexRecord, 0, len(m.vertices)),
		Edges:    make([]edgeRecord, 0, len(m.edges)),
		Faces:    make([]faceRecord, 0, len(m.faces)),
	}
	edgeId := func(e *Edge) int {
		if e == nil {
			return 0
		}
		return e.Id
	}
	faceId := func(f *Face) int {
		if f == nil {
			return 0
		}
		return f.Id
	}
	for _, v := range m.vertices {
		parsed_data.Vertices = append(parsed_data.Vertices, vertexRecord{
			Id: v.Id, X: v.X, Y: v.Y, Z: v.Z, Edge: edgeId(v.Edge),
		})
	}
	for _, e := range m.edges {
		parsed_data.Edges = append(parsed_data.Edges, edgeRecord{
			Id: e.Id,
			V1: e.V1.Id, V2: e.V2.Id,
			F1: faceId(e.F1), F2: faceId(e.F2),
			PV1F1: edgeId(e.PrevV1F1), NV1F1: edgeId(e.NextV1F1),
			PV2F2: edgeId(e.PrevV2F2), NV2F2: edgeId(e.NextV2F2),
		})
	}
	for _, f := range m.faces {
		parsed_data.Faces = append(parsed_data.Faces, faceRecord{
			Id: f.Id, Edge: edgeId(f.Edge), Rings: f.Rings,
		})
	}
	return json.NewEncoder(*mesh_writer).Encode(&parsed_data)
}

// Load parses a mesh from the given reader, rewires it and validates it.
func Load(mesh_reader *io.Reader) (m *Mesh, err error) {
	parsed_data := new(meshFileSchema)
	err = json.NewDecoder(*mesh_reader).Decode(parsed_data)
	if err != nil {
		err = errors.New("Could not parse json from mesh_reader")
		return
	}
	if parsed_data.Magic != meshFileMagic {
		err = errors.New("Not a wingmesh file")
		return
	}
	if parsed_data.Version != meshFileVersion {
		err = errors.New(
			"Unsupported wingmesh file version: " + strconv.Itoa(parsed_data.Version))
		return
	}

	m = New()
	m.shells = parsed_data.Shells
	m.genus = parsed_data.Genus
	m.rings = parsed_data.Rings

	verts := make(map[int]*Vertex, len(parsed_data.Vertices))
	edges := make(map[int]*Edge, len(parsed_data.Edges))
	faces := make(map[int]*Face, len(parsed_data.Faces))

	for _, vr := range parsed_data.Vertices {
		if vr.Id <= 0 || verts[vr.Id] != nil {
			err = errors.New("Invalid vertex id: " + strconv.Itoa(vr.Id))
			return nil, err
		}
		v := &Vertex{Id: vr.Id, mesh: m}
		v.X, v.Y, v.Z = vr.X, vr.Y, vr.Z
		verts[vr.Id] = v
		m.vertices = append(m.vertices, v)
	}
	for _, er := range parsed_data.Edges {
		if er.Id <= 0 || edges[er.Id] != nil {
			err = errors.New("Invalid edge id: " + strconv.Itoa(er.Id))
			return nil, err
		}
		e := &Edge{Id: er.Id, mesh: m}
		edges[er.Id] = e
		m.edges = append(m.edges, e)
	}
	for _, fr := range parsed_data.Faces {
		if fr.Id <= 0 || faces[fr.Id] != nil {
			err = errors.New("Invalid face id: " + strconv.Itoa(fr.Id))
			return nil, err
		}
		f := &Face{Id: fr.Id, Rings: fr.Rings, mesh: m}
		faces[fr.Id] = f
		m.faces = append(m.faces, f)
	}

	edgeRef := func(id int) (*Edge, error) {
		if id == 0 {
			return nil, nil
		}
		e := edges[id]
		if e == nil {
			return nil, errors.New("Dangling edge reference: " + strconv.Itoa(id))
		}
		return e, nil
	}

	for _, vr := range parsed_data.Vertices {
		if verts[vr.Id].Edge, err = edgeRef(vr.Edge); err != nil {
			return nil, err
		}
	}
	for _, er := range parsed_data.Edges {
		e := edges[er.Id]
		e.V1, e.V2 = verts[er.V1], verts[er.V2]
		if e.V1 == nil || e.V2 == nil {
			return nil, errors.New("Dangling vertex reference on edge " + strconv.Itoa(er.Id))
		}
		if er.F1 != 0 {
			if e.F1 = faces[er.F1]; e.F1 == nil {
				return nil, errors.New("Dangling face reference on edge " + strconv.Itoa(er.Id))
			}
		}
		if er.F2 != 0 {
			if e.F2 = faces[er.F2]; e.F2 == nil {
				return nil, errors.New("Dangling face reference on edge " + strconv.Itoa(er.Id))
			}
		}
		if e.PrevV1F1, err = edgeRef(er.PV1F1); err != nil {
			return nil, err
		}
		if e.NextV1F1, err = edgeRef(er.NV1F1); err != nil {
			return nil, err
		}
		if e.PrevV2F2, err = edgeRef(er.PV2F2); err != nil {
			return nil, err
		}
		if e.NextV2F2, err = edgeRef(er.NV2F2); err != nil {
			return nil, err
		}
	}
	for _, fr := range parsed_data.Faces {
		if faces[fr.Id].Edge, err = edgeRef(fr.Edge); err != nil {
			return nil, err
		}
	}

	// Restore the id counters; ids must never be reused, so they resume
	// past anything the file names.
	m.nextVId = parsed_data.NextVId
	m.nextEId = parsed_data.NextEId
	m.nextFId = parsed_data.NextFId
	if m.nextVId < 1 {
		m.nextVId = 1
	}
	if m.nextEId < 1 {
		m.nextEId = 1
	}
	if m.nextFId < 1 {
		m.nextFId = 1
	}
	for _, v := range m.vertices {
		if v.Id >= m.nextVId {
			m.nextVId = v.Id + 1
		}
	}
	for _, e := range m.edges {
		if e.Id >= m.nextEId {
			m.nextEId = e.Id + 1
		}
	}
	for _, f := range m.faces {
		if f.Id >= m.nextFId {
			m.nextFId = f.Id + 1
		}
	}

	if err = m.Validate(); err != nil {
		return nil, err
	}
	m.RecomputeNormals()
	return m, nil
}

// ReadFile loads a mesh from a file on disk.
func ReadFile(input_path string) (m *Mesh, err error) {
	input_file, err := os.Open(input_path)
	if err != nil {
		return
	}
	defer input_file.Close()
	mesh_reader := io.Reader(input_file)
	return Load(&mesh_reader)
}

// WriteFile saves the mesh to a file on disk.
func (m *Mesh) WriteFile(output_path string) (err error) {
	output_file, err := os.Create(output_path)
	if err != nil {
		return
	}
	defer output_file.Close()
	mesh_writer := io.Writer(output_file)
	return m.Save(&mesh_writer)
}
