package wingmesh

import (
	"math"

	"github.com/nat-n/geom"
	"github.com/nat-n/gomesh/transformation"
)

// ScaleAndCenter transforms every vertex so that the mesh's bounding box
// is centered on the origin with its largest dimension equal to
// max_dimension. Topology is untouched; cached normals are refreshed.
func (m *Mesh) ScaleAndCenter(max_dimension float64) error {
	bbox, err := m.BoundingBox()
	if err != nil {
		return err
	}
	center := bbox.Center()
	current_max_dim := math.Max(math.Max(bbox.Width(), bbox.Height()), bbox.Depth())
	if current_max_dim == 0 {
		return badArgument("mesh has no extent to scale")
	}
	scale_factor := max_dimension / current_max_dim

	// center then scale
	s := transformation.Scale(scale_factor)
	transform := s.Multiply(
		transformation.Translation(-center.GetX(), -center.GetY(), -center.GetZ()))

	all_vertices := make([]geom.Vec3I, 0, len(m.vertices))
	for _, v := range m.vertices {
		all_vertices = append(all_vertices, geom.Vec3I(v))
	}
	transform.ApplyToVec3(all_vertices...)

	m.RecomputeNormals()
	return nil
}
