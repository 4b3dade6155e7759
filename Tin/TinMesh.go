package Tin

import "sync"

// TinMesh 可编辑的三角不规则网络
// 原始点表只增不改序，点删除为软删除（记录原始索引），
// 三角形顶点索引指向当前活动点投影（剔除软删除点后按原序排列）
//
// 两层删除语义不同：
//   - 点删除持久，触发整体重新剖分
//   - 边删除只打Deleted标记，任何重新剖分后标记全部丢弃
type TinMesh struct {
	// genMu串行化所有变更，横跨整个 取状态-剖分-装入 过程，
	// 保证剖分基于的投影到装入时仍然有效
	genMu sync.Mutex
	// mu只保护下面的状态字段，读接口短暂持有
	mu          sync.Mutex
	points      []Point3D
	deleted     map[int]bool
	triangles   []Triangle
	triangulate Triangulator
	listeners   []func()
}

// NewTinMesh 创建空网格，使用默认Delaunay剖分
func NewTinMesh() *TinMesh {
	return NewTinMeshWith(DelaunayTriangles)
}

// NewTinMeshWith 创建空网格并指定剖分能力
func NewTinMeshWith(triangulator Triangulator) *TinMesh {
	if triangulator == nil {
		triangulator = DelaunayTriangles
	}
	return &TinMesh{
		deleted:     make(map[int]bool),
		triangulate: triangulator,
	}
}

// OnChange 注册网格变更回调，每次成功变更后同步触发
// 回调中可以安全地重新读取网格状态
func (m *TinMesh) OnChange(fn func()) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *TinMesh) notify() {
	m.mu.Lock()
	listeners := make([]func(), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// 计算当前活动点投影，调用方需持有锁
func (m *TinMesh) activePointsLocked() []Point3D {
	active := make([]Point3D, 0, len(m.points)-len(m.deleted))
	for i, p := range m.points {
		if !m.deleted[i] {
			active = append(active, p)
		}
	}
	return active
}

// SetPoints 整体替换原始点表并重新剖分，清空所有软删除
// 剖分失败时原状态完整保留
func (m *TinMesh) SetPoints(points []Point3D) error {
	owned := make([]Point3D, len(points))
	copy(owned, points)

	m.genMu.Lock()
	triangles, err := Triangulate(owned, m.triangulate)
	if err != nil {
		m.genMu.Unlock()
		return err
	}

	m.mu.Lock()
	m.points = owned
	m.deleted = make(map[int]bool)
	m.triangles = triangles
	m.mu.Unlock()
	m.genMu.Unlock()

	m.notify()
	return nil
}

// Regenerate 按当前活动点投影重新剖分，整体替换三角形表
// 之前的边删除标记全部丢弃，状态不变时重复调用结果一致
func (m *TinMesh) Regenerate() error {
	m.genMu.Lock()

	m.mu.Lock()
	active := m.activePointsLocked()
	m.mu.Unlock()

	triangles, err := Triangulate(active, m.triangulate)
	if err != nil {
		m.genMu.Unlock()
		return err
	}

	m.mu.Lock()
	m.triangles = triangles
	m.mu.Unlock()
	m.genMu.Unlock()

	m.notify()
	return nil
}

// DeleteEdge 将含有该边键的所有未删除三角形打上删除标记，返回标记数量
// 不触碰点数据，不重新剖分；键无匹配时也会触发变更通知
func (m *TinMesh) DeleteEdge(key string) int {
	m.genMu.Lock()
	m.mu.Lock()
	positions := TrianglesUsingEdge(m.triangles, key)
	for _, i := range positions {
		m.triangles[i].Deleted = true
	}
	m.mu.Unlock()
	m.genMu.Unlock()

	m.notify()
	return len(positions)
}

// DeletePointByActiveIndex 按活动索引软删除一个点并整体重新剖分
// 索引越界时不做任何改动，返回false；删除后之前的边删除标记全部丢弃
// 删除标记和新三角形表一起装入，读接口看不到中间状态
func (m *TinMesh) DeletePointByActiveIndex(active int) bool {
	m.genMu.Lock()

	m.mu.Lock()
	raw, ok := m.activeToRawLocked(active)
	if !ok {
		m.mu.Unlock()
		m.genMu.Unlock()
		return false
	}
	remaining := make([]Point3D, 0, len(m.points)-len(m.deleted)-1)
	for i, p := range m.points {
		if !m.deleted[i] && i != raw {
			remaining = append(remaining, p)
		}
	}
	m.mu.Unlock()

	triangles, err := Triangulate(remaining, m.triangulate)
	if err != nil {
		// 剖分失败时删除标记不落地，原状态完整保留
		m.genMu.Unlock()
		return false
	}

	m.mu.Lock()
	m.deleted[raw] = true
	m.triangles = triangles
	m.mu.Unlock()
	m.genMu.Unlock()

	m.notify()
	return true
}

// 活动索引转原始索引：按原序扫描计数，调用方需持有锁
func (m *TinMesh) activeToRawLocked(active int) (int, bool) {
	if active < 0 {
		return 0, false
	}
	count := 0
	for i := range m.points {
		if m.deleted[i] {
			continue
		}
		if count == active {
			return i, true
		}
		count++
	}
	return 0, false
}

// ActiveToRaw 活动索引转原始索引
func (m *TinMesh) ActiveToRaw(active int) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeToRawLocked(active)
}

// RawPoints 返回原始点表副本
func (m *TinMesh) RawPoints() []Point3D {
	m.mu.Lock()
	defer m.mu.Unlock()
	points := make([]Point3D, len(m.points))
	copy(points, m.points)
	return points
}

// ActivePoints 返回当前活动点投影
func (m *TinMesh) ActivePoints() []Point3D {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activePointsLocked()
}

// ActiveCount 当前活动点数量
func (m *TinMesh) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.points) - len(m.deleted)
}

// IsPointDeleted 判断原始索引是否已被软删除
func (m *TinMesh) IsPointDeleted(raw int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleted[raw]
}

// Triangles 返回三角形表副本（含已打删除标记的）
func (m *TinMesh) Triangles() []Triangle {
	m.mu.Lock()
	defer m.mu.Unlock()
	triangles := make([]Triangle, len(m.triangles))
	copy(triangles, m.triangles)
	return triangles
}

// ActiveTriangles 返回未删除的三角形
func (m *TinMesh) ActiveTriangles() []Triangle {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []Triangle
	for _, t := range m.triangles {
		if !t.Deleted {
			result = append(result, t)
		}
	}
	return result
}

// Snapshot 返回一次性一致的活动点投影与未删除三角形
// 拾取和出图都应基于同一份快照
func (m *TinMesh) Snapshot() ([]Point3D, []Triangle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	points := m.activePointsLocked()
	var triangles []Triangle
	for _, t := range m.triangles {
		if !t.Deleted {
			triangles = append(triangles, t)
		}
	}
	return points, triangles
}
