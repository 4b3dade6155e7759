package Tin

import "math"

// AxisMapper 将测量点映射到展示坐标系
// 拾取的查询点已经位于展示坐标系中，网格点必须经过同一映射再比较距离
type AxisMapper func(p Point3D) (x, y, z float64)

// IdentityAxes 不做任何轴变换
func IdentityAxes(p Point3D) (float64, float64, float64) {
	return p.X, p.Y, p.Z
}

// ViewAxes 地图客户端的展示约定：Z向上，Y取负作深度
func ViewAxes(p Point3D) (float64, float64, float64) {
	return p.X, p.Z, -p.Y
}

// Picker 对网格当前状态做最近要素查询
type Picker struct {
	mesh   *TinMesh
	mapper AxisMapper
}

// NewPicker 创建拾取器，默认不做轴变换
func NewPicker(mesh *TinMesh) *Picker {
	return &Picker{mesh: mesh, mapper: IdentityAxes}
}

// SetAxisMapper 设置展示坐标系映射，传nil恢复恒等映射
func (p *Picker) SetAxisMapper(mapper AxisMapper) {
	if mapper == nil {
		mapper = IdentityAxes
	}
	p.mapper = mapper
}

func dist3(x1, y1, z1, x2, y2, z2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	dz := z2 - z1
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// 点到线段距离：投影参数截断到[0,1]，零长线段退化为点距离
func segmentDistance(px, py, pz, ax, ay, az, bx, by, bz float64) float64 {
	dx := bx - ax
	dy := by - ay
	dz := bz - az
	length2 := dx*dx + dy*dy + dz*dz
	if length2 == 0 {
		return dist3(px, py, pz, ax, ay, az)
	}
	t := ((px-ax)*dx + (py-ay)*dy + (pz-az)*dz) / length2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return dist3(px, py, pz, ax+t*dx, ay+t*dy, az+t*dz)
}

// NearestPoint 在活动点投影中找距离查询点最近的点
// 最小距离严格小于maxDistance时返回其活动索引，否则返回false
// 距离相同时取活动索引较小者
func (p *Picker) NearestPoint(x, y, z float64, maxDistance float64) (int, bool) {
	points := p.mesh.ActivePoints()

	best := -1
	bestDist := math.Inf(1)
	for i, pt := range points {
		mx, my, mz := p.mapper(pt)
		d := dist3(x, y, z, mx, my, mz)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	if best < 0 || bestDist >= maxDistance {
		return 0, false
	}
	return best, true
}

// NearestEdge 在未删除三角形的边中找距离查询点最近的边
// 共享边按键去重只量一次，最小距离严格小于maxDistance时返回边键
func (p *Picker) NearestEdge(x, y, z float64, maxDistance float64) (string, bool) {
	points, triangles := p.mesh.Snapshot()

	seen := make(map[string]bool)
	bestKey := ""
	bestDist := math.Inf(1)
	for _, t := range triangles {
		for _, e := range TriangleEdges(t) {
			if seen[e.Key] {
				continue
			}
			seen[e.Key] = true
			if e.A < 0 || e.A >= len(points) || e.B < 0 || e.B >= len(points) {
				continue
			}
			ax, ay, az := p.mapper(points[e.A])
			bx, by, bz := p.mapper(points[e.B])
			d := segmentDistance(x, y, z, ax, ay, az, bx, by, bz)
			if d < bestDist {
				bestDist = d
				bestKey = e.Key
			}
		}
	}

	if bestKey == "" || bestDist >= maxDistance {
		return "", false
	}
	return bestKey, true
}
