package utils

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeometryStringSwapsToLatLon(t *testing.T) {
	coords := ParseGeometryString("((12.471998,41.846841),(12.473695,41.845806))")
	require.Len(t, coords, 2)
	assert.Equal(t, [2]float64{41.846841, 12.471998}, coords[0])
	assert.Equal(t, [2]float64{41.845806, 12.473695}, coords[1])
}

func TestParseGeometryStringSinglePair(t *testing.T) {
	coords := ParseGeometryString("(12.5,41.9)")
	require.Len(t, coords, 1)
	assert.Equal(t, [2]float64{41.9, 12.5}, coords[0])
}

func TestParseGeometryStringEmpty(t *testing.T) {
	assert.Nil(t, ParseGeometryString(""))
	assert.Nil(t, ParseGeometryString("   "))
	assert.Nil(t, ParseGeometryString("not a geometry"))
}

func TestFormatCoordinates(t *testing.T) {
	got := FormatCoordinates([]orb.Point{{12.5, 41.9}, {12.6, 42.0}})
	assert.Equal(t, "((12.500000,41.900000),(12.600000,42.000000))", got)

	assert.Equal(t, "", FormatCoordinates(nil))
}

func TestPointGeometryRoundTrip(t *testing.T) {
	geometry := PointGeometry(41.9, 12.5)
	coords := ParseGeometryString(geometry)
	require.Len(t, coords, 1)
	assert.InDelta(t, 41.9, coords[0][0], 1e-6)
	assert.InDelta(t, 12.5, coords[0][1], 1e-6)
}

func TestGeometryCenter(t *testing.T) {
	lat, lon, ok := GeometryCenter("((12.0,41.0),(14.0,43.0))")
	require.True(t, ok)
	assert.InDelta(t, 42.0, lat, 1e-9)
	assert.InDelta(t, 13.0, lon, 1e-9)

	_, _, ok = GeometryCenter("")
	assert.False(t, ok)
}
