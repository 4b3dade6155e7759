package Transformer

import (
	"fmt"
	"log"

	"github.com/GrainArc/TinSurvey/Tin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// MeshToFeatureCollection 将当前网格转换为GeoJSON要素集，供前端出图
// 三角形输出为面要素，活动点输出为点要素（高程写入属性）
// 输入应取自同一份网格快照
func MeshToFeatureCollection(points []Tin.Point3D, triangles []Tin.Triangle) *geojson.FeatureCollection {
	featureCollection := geojson.NewFeatureCollection()

	for i, t := range triangles {
		if !validTriangle(t, len(points)) {
			log.Printf("skip triangle %d: vertex index out of range", i)
			continue
		}
		a := points[t.A]
		b := points[t.B]
		c := points[t.C]
		ring := orb.Ring{
			{a.X, a.Y},
			{b.X, b.Y},
			{c.X, c.Y},
			{a.X, a.Y},
		}
		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties["kind"] = "triangle"
		feature.Properties["tid"] = i
		edges := Tin.TriangleEdges(t)
		feature.Properties["edges"] = []string{edges[0].Key, edges[1].Key, edges[2].Key}
		featureCollection.Append(feature)
	}

	for i, p := range points {
		feature := geojson.NewFeature(orb.Point{p.X, p.Y})
		feature.Properties["kind"] = "point"
		feature.Properties["pid"] = i
		feature.Properties["z"] = p.Z
		featureCollection.Append(feature)
	}

	return featureCollection
}

func validTriangle(t Tin.Triangle, pointCount int) bool {
	for _, v := range []int{t.A, t.B, t.C} {
		if v < 0 || v >= pointCount {
			return false
		}
	}
	return true
}

// MeshToDXF 将当前网格导出为DXF文件
// 每个三角形一个3DFACE（第四点重复闭合），测量点放单独图层
func MeshToDXF(points []Tin.Point3D, triangles []Tin.Triangle, outputFilename string) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	d.AddLayer("TIN", color.Green, dxf.DefaultLineType, true)
	for i, t := range triangles {
		if !validTriangle(t, len(points)) {
			return fmt.Errorf("triangle %d references vertex out of range", i)
		}
		a := points[t.A]
		b := points[t.B]
		c := points[t.C]
		_, err := d.ThreeDFace([][]float64{
			{a.X, a.Y, a.Z},
			{b.X, b.Y, b.Z},
			{c.X, c.Y, c.Z},
			{c.X, c.Y, c.Z},
		})
		if err != nil {
			return err
		}
	}

	d.AddLayer("SurveyPoint", color.Red, dxf.DefaultLineType, true)
	for _, p := range points {
		if _, err := d.Point(p.X, p.Y, p.Z); err != nil {
			return err
		}
	}

	if err := d.SaveAs(outputFilename); err != nil {
		log.Println(err)
		return err
	}
	return nil
}
