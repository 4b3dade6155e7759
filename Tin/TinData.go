package Tin

import "fmt"

// Point3D 表示一个三维测量点
type Point3D struct {
	X, Y, Z float64
}

// Point2D 表示一个二维平面点（送入三角剖分的投影）
type Point2D struct {
	X, Y float64
}

// Triangle 表示一个三角形，顶点为活动点索引
// Deleted 为手动剔除标记，重新剖分时整体重建
type Triangle struct {
	A, B, C int
	Deleted bool
}

// Edge 表示一条无向边，Key 为规范化键
type Edge struct {
	A, B int
	Key  string
}

// EdgeKey 生成无向边的规范化键（小索引在前）
// EdgeKey(a,b) == EdgeKey(b,a)
func EdgeKey(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}

// TriangleEdges 返回三角形的三条边（A-B, B-C, C-A）
func TriangleEdges(t Triangle) [3]Edge {
	return [3]Edge{
		{A: t.A, B: t.B, Key: EdgeKey(t.A, t.B)},
		{A: t.B, B: t.C, Key: EdgeKey(t.B, t.C)},
		{A: t.C, B: t.A, Key: EdgeKey(t.C, t.A)},
	}
}

// HasVertex 判断三角形是否引用该活动点索引
func (t Triangle) HasVertex(active int) bool {
	return t.A == active || t.B == active || t.C == active
}

// TrianglesUsingPoint 查找引用指定活动点的所有未删除三角形位置，升序返回
func TrianglesUsingPoint(triangles []Triangle, active int) []int {
	var result []int
	for i, t := range triangles {
		if t.Deleted {
			continue
		}
		if t.HasVertex(active) {
			result = append(result, i)
		}
	}
	return result
}

// TrianglesUsingEdge 查找含有指定边键的所有未删除三角形位置，升序返回
// 正常剖分中一条边最多被两个三角形共享，这里不做此假设，返回全部匹配
func TrianglesUsingEdge(triangles []Triangle, key string) []int {
	var result []int
	for i, t := range triangles {
		if t.Deleted {
			continue
		}
		for _, e := range TriangleEdges(t) {
			if e.Key == key {
				result = append(result, i)
				break
			}
		}
	}
	return result
}
