package Tin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestPoint(t *testing.T) {
	mesh := newSquareMesh(t)
	picker := NewPicker(mesh)

	index, ok := picker.NearestPoint(0.5, 0.5, 0, 2)
	require.True(t, ok)
	assert.Equal(t, 0, index)

	index, ok = picker.NearestPoint(4.8, 4.6, 0, 1)
	require.True(t, ok)
	assert.Equal(t, 3, index)
}

func TestNearestPointThresholdIsStrict(t *testing.T) {
	mesh := newSquareMesh(t)
	picker := NewPicker(mesh)

	// 查询点到最近点的距离恰好等于阈值时不命中
	_, ok := picker.NearestPoint(1, 0, 0, 1)
	assert.False(t, ok)

	_, ok = picker.NearestPoint(1, 0, 0, 1.001)
	assert.True(t, ok)

	// 阈值小于到所有点的距离
	_, ok = picker.NearestPoint(2.5, 2.5, 0, 0.1)
	assert.False(t, ok)
}

func TestNearestPointTieBreaksByLowestIndex(t *testing.T) {
	mesh := newSquareMesh(t)
	picker := NewPicker(mesh)

	// (2.5, 0, 0) 到索引0和索引1等距
	index, ok := picker.NearestPoint(2.5, 0, 0, 10)
	require.True(t, ok)
	assert.Equal(t, 0, index)
}

func TestNearestPointSkipsDeletedPoints(t *testing.T) {
	mesh := newSquareMesh(t)
	picker := NewPicker(mesh)

	require.True(t, mesh.DeletePointByActiveIndex(0))

	// 原始索引0已删除，活动索引0现在是原(5,0,0)
	index, ok := picker.NearestPoint(0.1, 0.1, 0, 100)
	require.True(t, ok)
	assert.Equal(t, 0, index)
	active := mesh.ActivePoints()
	assert.Equal(t, Point3D{X: 5, Y: 0, Z: 0}, active[index])
}

func TestNearestPointEmptyMesh(t *testing.T) {
	picker := NewPicker(NewTinMesh())
	_, ok := picker.NearestPoint(0, 0, 0, math.Inf(1))
	assert.False(t, ok)
}

func TestNearestEdge(t *testing.T) {
	mesh := newSquareMesh(t)
	picker := NewPicker(mesh)

	// 底边0-1的中点正下方
	key, ok := picker.NearestEdge(2.5, -0.2, 0, 1)
	require.True(t, ok)
	assert.Equal(t, EdgeKey(0, 1), key)

	_, ok = picker.NearestEdge(2.5, -0.2, 0, 0.1)
	assert.False(t, ok, "阈值内无边")
}

func TestNearestEdgeIgnoresDeletedTriangles(t *testing.T) {
	mesh := newSquareMesh(t)
	picker := NewPicker(mesh)

	diagonal := sharedEdgeKey(t, mesh.Triangles())
	mesh.DeleteEdge(diagonal)

	_, ok := picker.NearestEdge(2.5, 2.5, 0, math.Inf(1))
	assert.False(t, ok, "全部三角形被剔除后无边可拾取")
}

func TestSegmentDistanceClamping(t *testing.T) {
	// 线段(0,0,0)-(10,0,0)
	assert.InDelta(t, 3.0, segmentDistance(5, 3, 0, 0, 0, 0, 10, 0, 0), 1e-12, "投影在段内")
	assert.InDelta(t, 5.0, segmentDistance(-3, 4, 0, 0, 0, 0, 10, 0, 0), 1e-12, "投影截断到起点")
	assert.InDelta(t, 5.0, segmentDistance(13, 4, 0, 0, 0, 0, 10, 0, 0), 1e-12, "投影截断到终点")
}

func TestSegmentDistanceDegenerateEdge(t *testing.T) {
	// 零长线段退化为点距离
	d := segmentDistance(3, 4, 0, 1, 1, 1, 1, 1, 1)
	assert.InDelta(t, dist3(3, 4, 0, 1, 1, 1), d, 1e-12)
}

func TestViewAxesPermutation(t *testing.T) {
	x, y, z := ViewAxes(Point3D{X: 1, Y: 2, Z: 3})
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 3.0, y, "Z向上")
	assert.Equal(t, -2.0, z, "Y取负作深度")
}

func TestPickingInViewSpace(t *testing.T) {
	mesh := NewTinMesh()
	require.NoError(t, mesh.SetPoints([]Point3D{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 5},
		{X: 0, Y: 10, Z: 2},
	}))

	picker := NewPicker(mesh)
	picker.SetAxisMapper(ViewAxes)

	// 查询点直接给在展示坐标系：点(10,0,5)映射为(10,5,0)
	index, ok := picker.NearestPoint(10, 5, 0, 0.5)
	require.True(t, ok)
	assert.Equal(t, 1, index)

	// 同一位置在恒等映射下不命中
	picker.SetAxisMapper(nil)
	_, ok = picker.NearestPoint(10, 5, 0, 0.5)
	assert.False(t, ok)
}
