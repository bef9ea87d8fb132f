package preview

import (
	"github.com/nailtryon/tryon/internal/render"
	"github.com/nailtryon/tryon/internal/tryon"
)

// Mesh returns the triangulated nails of a finished render, for the
// geometry overlay. Recolor renders show the geometry of their reference
// photograph.
func Mesh(comp *tryon.Compositor, req tryon.Request, res *tryon.Result) ([]render.NailMesh, error) {
	b := res.Image.Bounds()
	set := res.Geometry
	if res.Path == tryon.PathRecolor {
		set = comp.Geometry(req.Source)
	}
	return render.Triangulate(set, b.Dx(), b.Dy(), req.Shape, req.Length)
}

// TriangleVertices flattens meshes into x, y pairs, three vertices per
// triangle, for a GL_TRIANGLES draw.
func TriangleVertices(meshes []render.NailMesh) []float32 {
	var n int
	for _, m := range meshes {
		n += len(m.Triangles)
	}
	out := make([]float32, 0, n*6)
	for _, m := range meshes {
		for _, tri := range m.Triangles {
			for _, p := range tri {
				out = append(out, float32(p.X), float32(p.Y))
			}
		}
	}
	return out
}
