package Transformer

import (
	"testing"

	"github.com/GrainArc/TinSurvey/Tin"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshToFeatureCollection(t *testing.T) {
	points := []Tin.Point3D{
		{X: 0, Y: 0, Z: 10},
		{X: 5, Y: 0, Z: 11},
		{X: 0, Y: 5, Z: 12},
	}
	triangles := []Tin.Triangle{{A: 0, B: 1, C: 2}}

	fc := MeshToFeatureCollection(points, triangles)
	require.Len(t, fc.Features, 4, "1个三角形 + 3个点")

	tri := fc.Features[0]
	assert.Equal(t, "triangle", tri.Properties["kind"])
	polygon, ok := tri.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, polygon, 1)
	assert.Len(t, polygon[0], 4, "环首尾闭合")
	assert.Equal(t, polygon[0][0], polygon[0][3])

	pt := fc.Features[1]
	assert.Equal(t, "point", pt.Properties["kind"])
	assert.Equal(t, 10.0, pt.Properties["z"], "高程写入属性")
}

func TestMeshToFeatureCollectionSkipsInvalidTriangle(t *testing.T) {
	points := []Tin.Point3D{{X: 0, Y: 0}, {X: 1, Y: 0}}
	triangles := []Tin.Triangle{{A: 0, B: 1, C: 9}}

	fc := MeshToFeatureCollection(points, triangles)
	assert.Len(t, fc.Features, 2, "越界三角形跳过，点照常输出")
}

func TestMeshToFeatureCollectionEmptyMesh(t *testing.T) {
	fc := MeshToFeatureCollection(nil, nil)
	assert.Empty(t, fc.Features)
}
