package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	shp "gitee.com/LJ_COOL/go-shp"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ShapefilePreview is the payload returned to the map frontend before the
// geometry is committed to a record.
type ShapefilePreview struct {
	Geometry  string  `json:"geometry"`
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	Points    int     `json:"points"`
}

// ExtractGeometryFromShapefile reads an uploaded .shp file and returns the
// exterior ring of its first shape in the ((x,y),...) storage format.
func ExtractGeometryFromShapefile(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// go-shp reads from a path, so stage the upload in a temp file.
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload_%s.shp", uuid.NewString()))
	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return "", err
	}
	dst.Close()
	defer os.Remove(tmpPath)

	reader, err := shp.Open(tmpPath)
	if err != nil {
		return "", fmt.Errorf("invalid shapefile: %w", err)
	}
	defer reader.Close()

	if !reader.Next() {
		return "", errors.New("the shapefile does not contain any geometries")
	}
	_, shape := reader.Shape()

	ring := exteriorRing(shape)
	if len(ring) == 0 {
		return "", errors.New("the shapefile does not contain any geometries")
	}
	return FormatCoordinates(ring), nil
}

// PreviewShapefile extracts the geometry and computes the map center of the
// exterior ring.
func PreviewShapefile(file *multipart.FileHeader) (*ShapefilePreview, error) {
	geometry, err := ExtractGeometryFromShapefile(file)
	if err != nil {
		return nil, err
	}
	coords := ParseGeometryString(geometry)

	ring := make(orb.Ring, 0, len(coords))
	for _, c := range coords {
		ring = append(ring, orb.Point{c[1], c[0]})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	center, _ := planar.CentroidArea(ring)

	return &ShapefilePreview{
		Geometry:  geometry,
		CenterLat: center.Y(),
		CenterLon: center.X(),
		Points:    len(coords),
	}, nil
}

// exteriorRing returns the first part of a polygon or polyline shape, or the
// single position of a point shape.
func exteriorRing(shape shp.Shape) []orb.Point {
	toPoints := func(points []shp.Point, parts []int32) []orb.Point {
		end := len(points)
		if len(parts) > 1 {
			end = int(parts[1])
		}
		out := make([]orb.Point, 0, end)
		for _, p := range points[:end] {
			out = append(out, orb.Point{p.X, p.Y})
		}
		return out
	}

	switch s := shape.(type) {
	case *shp.Polygon:
		return toPoints(s.Points, s.Parts)
	case *shp.PolyLine:
		return toPoints(s.Points, s.Parts)
	case *shp.Point:
		return []orb.Point{{s.X, s.Y}}
	default:
		return nil
	}
}
