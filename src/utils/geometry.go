package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Geometry strings are stored as ((lon1,lat1),(lon2,lat2),...). The map
// frontend wants (lat, lon) ordering, so parsing swaps each pair.

var coordPairRe = regexp.MustCompile(`\(([\d.]+),([\d.]+)\)`)

// ParseGeometryString parses the stored polygon string and returns [lat, lon]
// pairs, or nil when the input is empty or contains no coordinate pairs.
func ParseGeometryString(geometry string) [][2]float64 {
	geometry = strings.TrimSpace(geometry)
	if geometry == "" {
		return nil
	}

	if strings.HasPrefix(geometry, "((") && strings.HasSuffix(geometry, "))") {
		geometry = geometry[1 : len(geometry)-1]
	}

	matches := coordPairRe.FindAllStringSubmatch(geometry, -1)
	if len(matches) == 0 {
		return nil
	}

	coords := make([][2]float64, 0, len(matches))
	for _, m := range matches {
		lon, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		coords = append(coords, [2]float64{lat, lon})
	}
	if len(coords) == 0 {
		return nil
	}
	return coords
}

// FormatCoordinates builds the canonical geometry string from (x, y) points.
func FormatCoordinates(points []orb.Point) string {
	if len(points) == 0 {
		return ""
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("(%.6f,%.6f)", p.X(), p.Y())
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// PointGeometry stores a single lat/lon position as a one-pair geometry
// string, so points and polygons share the same stored shape.
func PointGeometry(lat, lon float64) string {
	return FormatCoordinates([]orb.Point{{lon, lat}})
}

// GeometryCenter returns the center of the parsed polygon as (lat, lon),
// used by detail pages to center the map. ok is false for empty geometry.
func GeometryCenter(geometry string) (lat, lon float64, ok bool) {
	coords := ParseGeometryString(geometry)
	if len(coords) == 0 {
		return 0, 0, false
	}
	for _, c := range coords {
		lat += c[0]
		lon += c[1]
	}
	n := float64(len(coords))
	return lat / n, lon / n, true
}
