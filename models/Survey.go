package models

// TinScheme 测量点方案
// 只保存原始输入点集，网格本身不入库，加载后重新剖分
type TinScheme struct {
	ID         int64  `gorm:"primary_key;autoIncrement" json:"id"`
	SchemeName string `gorm:"type:varchar(255);index" json:"schemeName"` // 方案名称
	DeviceName string `gorm:"type:varchar(255)" json:"deviceName"`       // 采集设备
	Date       string `gorm:"type:varchar(255)" json:"date"`             // 保存时间
	PointCount int    `json:"pointCount"`                                // 点数
}

// TinSchemePoint 方案内的单个测量点，Seq保持输入顺序
type TinSchemePoint struct {
	ID       int64   `gorm:"primary_key;autoIncrement" json:"id"`
	SchemeID int64   `gorm:"index" json:"schemeId"`
	Seq      int     `json:"seq"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}
