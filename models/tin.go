package models

// models/tin.go 网格编辑接口的请求结构

// PointsData 整体替换点集
type PointsData struct {
	Session string      `json:"session"`
	Points  [][]float64 `json:"points"`  // [x,y] 或 [x,y,z]
	Geojson string      `json:"geojson"` // 可选：GeoJSON几何字符串
}

// EdgeDeleteData 删除一条边（及其相邻三角形）
type EdgeDeleteData struct {
	Session string `json:"session"`
	EdgeKey string `json:"edgekey"`
}

// PointDeleteData 按活动索引删除一个点
type PointDeleteData struct {
	Session     string `json:"session"`
	ActiveIndex int    `json:"activeindex"`
}

// PickData 最近要素拾取
// Axes为"view"时查询点位于展示坐标系（Z向上、Y取负作深度）
type PickData struct {
	Session     string  `json:"session"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	MaxDistance float64 `json:"maxdistance"`
	Axes        string  `json:"axes"`
}

// SchemeSaveData 保存当前会话的点集为方案
type SchemeSaveData struct {
	Session    string `json:"session"`
	SchemeName string `json:"schemename"`
}
