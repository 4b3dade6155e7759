package Tin

import "math"

// Triangulator 平面三角剖分能力
// 输入平面点序列，输出顶点索引三元组，索引与输入顺序一一对应
// 任何成熟的Delaunay实现都可以替换默认实现
type Triangulator func(points []Point2D) ([][3]int, error)

// Triangulate 三角剖分适配器
// 将三维点投影到XY平面（Z只用于展示，剖分忽略），调用剖分能力，
// 打包为Triangle记录，Deleted统一为false
// 点数不足3时返回空结果，不调用剖分能力
func Triangulate(points []Point3D, triangulator Triangulator) ([]Triangle, error) {
	if len(points) < 3 {
		return nil, nil
	}
	if triangulator == nil {
		triangulator = DelaunayTriangles
	}

	plane := make([]Point2D, len(points))
	for i, p := range points {
		plane[i] = Point2D{X: p.X, Y: p.Y}
	}

	indices, err := triangulator(plane)
	if err != nil {
		return nil, err
	}

	triangles := make([]Triangle, len(indices))
	for i, t := range indices {
		triangles[i] = Triangle{A: t[0], B: t[1], C: t[2], Deleted: false}
	}
	return triangles, nil
}

// 计算三角形外接圆圆心和半径
func circumcircle(p1, p2, p3 Point2D) (cx, cy, r float64) {
	ax, ay := p1.X, p1.Y
	bx, by := p2.X, p2.Y
	cx1, cy1 := p3.X, p3.Y

	d := 2 * (ax*(by-cy1) + bx*(cy1-ay) + cx1*(ay-by))
	if math.Abs(d) < 1e-10 {
		return 0, 0, math.Inf(1)
	}

	ux := (ax*ax+ay*ay)*(by-cy1) + (bx*bx+by*by)*(cy1-ay) + (cx1*cx1+cy1*cy1)*(ay-by)
	uy := (ax*ax+ay*ay)*(cx1-bx) + (bx*bx+by*by)*(ax-cx1) + (cx1*cx1+cy1*cy1)*(bx-ax)

	cx = ux / d
	cy = uy / d
	r = math.Sqrt((cx-ax)*(cx-ax) + (cy-ay)*(cy-ay))

	return cx, cy, r
}

// 判断点是否在三角形外接圆内
func inCircumcircle(p, p1, p2, p3 Point2D) bool {
	cx, cy, r := circumcircle(p1, p2, p3)
	if math.IsInf(r, 1) {
		return false
	}
	dist := math.Sqrt((p.X-cx)*(p.X-cx) + (p.Y-cy)*(p.Y-cy))
	return dist < r
}

// 创建包含所有输入点的超级三角形顶点
func superTrianglePoints(points []Point2D) [3]Point2D {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	dx := maxX - minX
	dy := maxY - minY
	deltaMax := math.Max(math.Max(dx, dy), 1)
	midX := (minX + maxX) / 2
	midY := (minY + maxY) / 2

	return [3]Point2D{
		{X: midX - 20*deltaMax, Y: midY - deltaMax},
		{X: midX, Y: midY + 20*deltaMax},
		{X: midX + 20*deltaMax, Y: midY - deltaMax},
	}
}

// DelaunayTriangles 默认剖分实现（Bowyer-Watson增量法）
// 结果顺序只由输入顺序决定，相同输入必得相同输出
func DelaunayTriangles(points []Point2D) ([][3]int, error) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	// 扩展点表，末尾三个为超级三角形顶点
	ext := make([]Point2D, n, n+3)
	copy(ext, points)
	for _, sp := range superTrianglePoints(points) {
		ext = append(ext, sp)
	}

	triangles := [][3]int{{n, n + 1, n + 2}}

	for pi := 0; pi < n; pi++ {
		p := ext[pi]

		// 找到外接圆包含当前点的坏三角形
		badMark := make(map[int]bool)
		for ti, t := range triangles {
			if inCircumcircle(p, ext[t[0]], ext[t[1]], ext[t[2]]) {
				badMark[ti] = true
			}
		}

		// 收集坏三角形的边，未被两个坏三角形共享的即为空腔边界
		type edgePair struct{ a, b int }
		var boundary [][2]int
		count := make(map[edgePair]int)
		for ti, t := range triangles {
			if !badMark[ti] {
				continue
			}
			for _, e := range [3][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}} {
				k := edgePair{a: e[0], b: e[1]}
				if k.a > k.b {
					k.a, k.b = k.b, k.a
				}
				count[k]++
			}
		}
		for ti, t := range triangles {
			if !badMark[ti] {
				continue
			}
			for _, e := range [3][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}} {
				k := edgePair{a: e[0], b: e[1]}
				if k.a > k.b {
					k.a, k.b = k.b, k.a
				}
				if count[k] == 1 {
					boundary = append(boundary, e)
				}
			}
		}

		// 移除坏三角形，用空腔边界与当前点重建
		var next [][3]int
		for ti, t := range triangles {
			if !badMark[ti] {
				next = append(next, t)
			}
		}
		for _, e := range boundary {
			next = append(next, [3]int{e[0], e[1], pi})
		}
		triangles = next
	}

	// 移除引用超级三角形顶点的三角形
	var final [][3]int
	for _, t := range triangles {
		if t[0] < n && t[1] < n && t[2] < n {
			final = append(final, t)
		}
	}
	return final, nil
}
