package render

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/nailtryon/tryon/internal/geom"
	"github.com/nailtryon/tryon/internal/nails"
)

// earClip triangulates a simple polygon using the earcut algorithm. It takes
// the outline vertices in path order and returns a slice of triangles, each
// represented as a [3]geom.Point and wound counter-clockwise in y-down space.
func earClip(polygonPoints []geom.Point) ([][3]geom.Point, error) {
	if len(polygonPoints) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(polygonPoints))
	}

	// Convert polygon points to flat coordinate array required by earcut.
	// Format: [x0, y0, x1, y1, ..., xn, yn]
	vertexCoords := make([]float64, len(polygonPoints)*2)
	for i, point := range polygonPoints {
		vertexCoords[i*2] = point.X
		vertexCoords[i*2+1] = point.Y
	}

	triangleIndices, err := earcut.Earcut(vertexCoords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulation failed for %d-vertex polygon: %w", len(polygonPoints), err)
	}
	if len(triangleIndices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(triangleIndices))
	}

	triangleCount := len(triangleIndices) / 3
	triangles := make([][3]geom.Point, 0, triangleCount)
	for triangleIndex := 0; triangleIndex < triangleCount; triangleIndex++ {
		baseIndex := triangleIndex * 3
		tri := [3]geom.Point{
			polygonPoints[triangleIndices[baseIndex]],
			polygonPoints[triangleIndices[baseIndex+1]],
			polygonPoints[triangleIndices[baseIndex+2]],
		}

		// GL culling and area sums expect one winding for every triangle.
		if cross(tri[0], tri[1], tri[2]) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		triangles = append(triangles, tri)
	}

	return triangles, nil
}

func cross(a, b, c geom.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// NailMesh is the triangulated outline of one nail, in buffer pixels.
type NailMesh struct {
	Finger    nails.Finger
	Triangles [][3]geom.Point
}

// Triangulate returns the triangle mesh of every nail of the set as it would
// be drawn into a w×h buffer.
func Triangulate(set nails.Set, w, h int, shape Shape, length Length) ([]NailMesh, error) {
	meshes := make([]NailMesh, 0, len(set))
	for _, rec := range set {
		outline := NailFrame(rec, w, h, length).BufferOutline(shape, rec.Curvature)
		triangles, err := earClip(outline)
		if err != nil {
			return nil, fmt.Errorf("%v nail: %w", rec.Finger, err)
		}
		if len(triangles) == 0 {
			return nil, fmt.Errorf("%v nail: outline has no area", rec.Finger)
		}
		meshes = append(meshes, NailMesh{Finger: rec.Finger, Triangles: triangles})
	}
	renderLogger.Printf("mesh %dx%d %s/%s: %d nails", w, h, shape, length, len(meshes))
	return meshes, nil
}
