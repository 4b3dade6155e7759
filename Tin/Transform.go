package Tin

import (
	"encoding/json"
	"fmt"
	"math"
)

// CoordsToPoint3D 将坐标数组转换为三维点
// 每个坐标至少2维，缺省Z为0
func CoordsToPoint3D(coords [][]float64) ([]Point3D, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("coords is empty")
	}

	points := make([]Point3D, len(coords))
	for i, coord := range coords {
		if len(coord) < 2 {
			return nil, fmt.Errorf("coordinate at index %d has insufficient dimensions (need at least 2, got %d)", i, len(coord))
		}
		if !validCoord(coord) {
			return nil, fmt.Errorf("invalid coordinate at index %d: %v", i, coord)
		}

		point := Point3D{
			X: coord[0],
			Y: coord[1],
			Z: 0.0, // 默认Z值
		}
		if len(coord) >= 3 {
			point.Z = coord[2]
		}
		points[i] = point
	}

	return points, nil
}

func validCoord(coord []float64) bool {
	for _, v := range coord {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// GeoJSONGeometry 表示GeoJSON几何对象的结构
type GeoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// GeometryStringToPoints 将GeoJSON Geometry字符串转换为三维点序列
// 支持的几何类型：Point, MultiPoint, LineString
// 高程直接取坐标第三维，orb等二维库会丢失Z，这里自行解析
func GeometryStringToPoints(geometryStr string) ([]Point3D, error) {
	var geom GeoJSONGeometry
	if err := json.Unmarshal([]byte(geometryStr), &geom); err != nil {
		return nil, fmt.Errorf("failed to parse geometry JSON: %v", err)
	}

	switch geom.Type {
	case "Point":
		var coord []float64
		if err := json.Unmarshal(geom.Coordinates, &coord); err != nil {
			return nil, fmt.Errorf("failed to parse point coordinates: %v", err)
		}
		return CoordsToPoint3D([][]float64{coord})
	case "MultiPoint", "LineString":
		var coords [][]float64
		if err := json.Unmarshal(geom.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("failed to parse coordinates: %v", err)
		}
		points, err := CoordsToPoint3D(coords)
		if err != nil {
			return nil, err
		}
		return stripClosingPoint(points), nil
	default:
		return nil, fmt.Errorf("unsupported geometry type: %s (only Point, MultiPoint and LineString are supported)", geom.Type)
	}
}

// 移除重复的闭合点（闭合线的首尾点通常相同）
func stripClosingPoint(points []Point3D) []Point3D {
	if len(points) > 1 {
		first := points[0]
		last := points[len(points)-1]
		if math.Abs(first.X-last.X) < 1e-10 && math.Abs(first.Y-last.Y) < 1e-10 {
			return points[:len(points)-1]
		}
	}
	return points
}
