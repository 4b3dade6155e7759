package Transformer

import (
	"fmt"
	"path/filepath"
	"strings"

	"gitee.com/LJ_COOL/go-shp"
	"github.com/GrainArc/TinSurvey/Tin"
	"github.com/GrainArc/TinSurvey/methods"
)

// ShpToPoints 从shapefile读取测量点
// 支持Point/PointZ/PointM，PointZ保留高程，其余Z为0
// 线面要素不属于测量点数据，直接报错
func ShpToPoints(shpfileFilePath string) ([]Tin.Point3D, error) {
	shape, err := shp.Open(shpfileFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %v", err)
	}
	defer shape.Close()

	var points []Tin.Point3D

	for shape.Next() {
		_, p := shape.Shape()

		switch s := p.(type) {
		case *shp.Point:
			points = append(points, Tin.Point3D{X: s.X, Y: s.Y, Z: 0})
		case *shp.PointZ:
			points = append(points, Tin.Point3D{X: s.X, Y: s.Y, Z: s.Z})
		case *shp.PointM:
			points = append(points, Tin.Point3D{X: s.X, Y: s.Y, Z: 0})
		default:
			return nil, fmt.Errorf("unsupported shape type %T (point shapefile required)", s)
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("shapefile contains no point features")
	}
	return points, nil
}

// ArchiveToPoints 从上传的文件读取测量点
// 压缩包先解压再在目录内找.shp，裸.shp直接读取
func ArchiveToPoints(path string) ([]Tin.Point3D, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".shp" {
		return ShpToPoints(path)
	}

	if ext == ".zip" || ext == ".rar" {
		dir, err := methods.Unzip(path)
		if err != nil {
			return nil, fmt.Errorf("failed to extract archive: %v", err)
		}
		shpPath, ok := methods.FindFileByExt(dir, ".shp")
		if !ok {
			return nil, fmt.Errorf("no .shp file found in archive")
		}
		return ShpToPoints(shpPath)
	}

	return nil, fmt.Errorf("unsupported file format: %s", ext)
}
