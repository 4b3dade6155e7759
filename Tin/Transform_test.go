package Tin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordsToPoint3D(t *testing.T) {
	points, err := CoordsToPoint3D([][]float64{
		{1, 2},
		{3, 4, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, []Point3D{
		{X: 1, Y: 2, Z: 0},
		{X: 3, Y: 4, Z: 5},
	}, points)
}

func TestCoordsToPoint3DErrors(t *testing.T) {
	_, err := CoordsToPoint3D(nil)
	assert.Error(t, err)

	_, err = CoordsToPoint3D([][]float64{{1}})
	assert.Error(t, err, "坐标维度不足")
}

func TestGeometryStringToPointsMultiPoint(t *testing.T) {
	points, err := GeometryStringToPoints(`{"type":"MultiPoint","coordinates":[[0,0,100],[5,0,101],[0,5,102]]}`)
	require.NoError(t, err)
	assert.Equal(t, []Point3D{
		{X: 0, Y: 0, Z: 100},
		{X: 5, Y: 0, Z: 101},
		{X: 0, Y: 5, Z: 102},
	}, points, "高程必须保留")
}

func TestGeometryStringToPointsSinglePoint(t *testing.T) {
	points, err := GeometryStringToPoints(`{"type":"Point","coordinates":[1.5,2.5,3.5]}`)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, Point3D{X: 1.5, Y: 2.5, Z: 3.5}, points[0])
}

func TestGeometryStringToPointsStripsClosingPoint(t *testing.T) {
	points, err := GeometryStringToPoints(`{"type":"LineString","coordinates":[[0,0],[5,0],[5,5],[0,0]]}`)
	require.NoError(t, err)
	assert.Len(t, points, 3, "闭合点去重")
}

func TestGeometryStringToPointsUnsupportedType(t *testing.T) {
	_, err := GeometryStringToPoints(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[0,1],[0,0]]]}`)
	assert.Error(t, err)

	_, err = GeometryStringToPoints(`not json`)
	assert.Error(t, err)
}
