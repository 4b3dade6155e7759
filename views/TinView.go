package views

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/GrainArc/TinSurvey/Tin"
	"github.com/GrainArc/TinSurvey/Transformer"
	"github.com/GrainArc/TinSurvey/config"
	"github.com/GrainArc/TinSurvey/models"
	"github.com/GrainArc/TinSurvey/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TIN编辑会话接口

type TinController struct {
	Service *services.MeshService
}

func NewTinController() *TinController {
	return &TinController{
		Service: services.NewMeshService(),
	}
}

// 从请求中解出点集：优先上传文件（shp/压缩包），其次geojson字符串，最后坐标数组
func (tc *TinController) parsePoints(c *gin.Context) ([]Tin.Point3D, error) {
	file, err := c.FormFile("file")
	if err == nil {
		taskid := uuid.New().String()
		path, _ := filepath.Abs(filepath.Join("./TempFile", taskid, file.Filename))
		if err := c.SaveUploadedFile(file, path); err != nil {
			return nil, fmt.Errorf("failed to save uploaded file: %v", err)
		}
		return Transformer.ArchiveToPoints(path)
	}

	var data models.PointsData
	if err := c.ShouldBindJSON(&data); err != nil {
		return nil, fmt.Errorf("invalid request body: %v", err)
	}
	if data.Geojson != "" {
		return Tin.GeometryStringToPoints(data.Geojson)
	}
	if len(data.Points) > 0 {
		return Tin.CoordsToPoint3D(data.Points)
	}
	return nil, fmt.Errorf("请上传文件或提供点坐标数据")
}

// CreateSession 新建编辑会话
func (tc *TinController) CreateSession(c *gin.Context) {
	points, err := tc.parsePoints(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := tc.Service.CreateSession(points)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("session %s created with %d points", session.ID, len(points))
	c.JSON(http.StatusOK, gin.H{
		"session":     session.ID,
		"activecount": session.Mesh.ActiveCount(),
		"triangles":   len(session.Mesh.ActiveTriangles()),
	})
}

// DelSession 关闭编辑会话
func (tc *TinController) DelSession(c *gin.Context) {
	id := c.Query("session")
	if !tc.Service.DeleteSession(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (tc *TinController) session(c *gin.Context, id string) (*services.MeshSession, bool) {
	session, ok := tc.Service.GetSession(id)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session not found"})
		return nil, false
	}
	return session, true
}

// SetPoints 整体替换会话点集，清空所有软删除并重新剖分
func (tc *TinController) SetPoints(c *gin.Context) {
	var data models.PointsData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, ok := tc.session(c, data.Session)
	if !ok {
		return
	}

	var points []Tin.Point3D
	var err error
	if data.Geojson != "" {
		points, err = Tin.GeometryStringToPoints(data.Geojson)
	} else if len(data.Points) > 0 {
		points, err = Tin.CoordsToPoint3D(data.Points)
	}
	// 空点集是合法状态（清空网格，降级为无三角形）
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.Mesh.SetPoints(points); err != nil {
		// 剖分失败时旧网格原样保留
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"activecount": session.Mesh.ActiveCount(),
		"triangles":   len(session.Mesh.ActiveTriangles()),
	})
}

// GetMesh 读取当前活动点投影和未删除三角形
func (tc *TinController) GetMesh(c *gin.Context) {
	session, ok := tc.session(c, c.Query("session"))
	if !ok {
		return
	}

	points, triangles := session.Mesh.Snapshot()
	outPoints := make([][]float64, len(points))
	for i, p := range points {
		outPoints[i] = []float64{p.X, p.Y, p.Z}
	}
	outTriangles := make([][]int, len(triangles))
	for i, t := range triangles {
		outTriangles[i] = []int{t.A, t.B, t.C}
	}

	c.JSON(http.StatusOK, gin.H{
		"points":    outPoints,
		"triangles": outTriangles,
	})
}

// GetMeshGeojson 当前网格的GeoJSON要素集
func (tc *TinController) GetMeshGeojson(c *gin.Context) {
	session, ok := tc.session(c, c.Query("session"))
	if !ok {
		return
	}

	points, triangles := session.Mesh.Snapshot()
	c.JSON(http.StatusOK, Transformer.MeshToFeatureCollection(points, triangles))
}

// DeleteEdge 删除一条边及其相邻三角形（打标记，不重新剖分）
func (tc *TinController) DeleteEdge(c *gin.Context) {
	var data models.EdgeDeleteData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, ok := tc.session(c, data.Session)
	if !ok {
		return
	}

	marked := session.Mesh.DeleteEdge(data.EdgeKey)
	c.JSON(http.StatusOK, gin.H{"deleted": marked})
}

// DeletePoint 按活动索引软删除一个点并重新剖分
func (tc *TinController) DeletePoint(c *gin.Context) {
	var data models.PointDeleteData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, ok := tc.session(c, data.Session)
	if !ok {
		return
	}

	if !session.Mesh.DeletePointByActiveIndex(data.ActiveIndex) {
		// 索引越界不算致命错误，报给前端即可
		c.JSON(http.StatusOK, gin.H{"deleted": false, "msg": "active index not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted":     true,
		"activecount": session.Mesh.ActiveCount(),
		"triangles":   len(session.Mesh.ActiveTriangles()),
	})
}

func (tc *TinController) picker(session *services.MeshSession, axes string) *Tin.Picker {
	if axes == "view" {
		picker := Tin.NewPicker(session.Mesh)
		picker.SetAxisMapper(Tin.ViewAxes)
		return picker
	}
	return session.Picker
}

// NearestPoint 最近点拾取
func (tc *TinController) NearestPoint(c *gin.Context) {
	var data models.PickData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, ok := tc.session(c, data.Session)
	if !ok {
		return
	}

	index, found := tc.picker(session, data.Axes).NearestPoint(data.X, data.Y, data.Z, data.MaxDistance)
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "activeindex": index})
}

// NearestEdge 最近边拾取
func (tc *TinController) NearestEdge(c *gin.Context) {
	var data models.PickData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, ok := tc.session(c, data.Session)
	if !ok {
		return
	}

	key, found := tc.picker(session, data.Axes).NearestEdge(data.X, data.Y, data.Z, data.MaxDistance)
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "edgekey": key})
}

// ExportDXF 导出当前网格为DXF
func (tc *TinController) ExportDXF(c *gin.Context) {
	session, ok := tc.session(c, c.Query("session"))
	if !ok {
		return
	}

	points, triangles := session.Mesh.Snapshot()
	outPath, _ := filepath.Abs(filepath.Join(config.Download, "OutFile", session.ID+".dxf"))
	if err := os.MkdirAll(filepath.Dir(outPath), os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := Transformer.MeshToDXF(points, triangles, outPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(outPath, "tin.dxf")
}

// SaveScheme 保存当前会话的原始点集为方案
// 网格本身不入库，加载时重新剖分
func (tc *TinController) SaveScheme(c *gin.Context) {
	var data models.SchemeSaveData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if data.SchemeName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "schemename required"})
		return
	}
	session, ok := tc.session(c, data.Session)
	if !ok {
		return
	}

	DB := models.DB
	points := session.Mesh.RawPoints()
	scheme := models.TinScheme{
		SchemeName: data.SchemeName,
		DeviceName: config.DeviceName,
		Date:       time.Now().Format("2006-01-02 15:04:05"),
		PointCount: len(points),
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&scheme).Error; err != nil {
			return err
		}
		if len(points) == 0 {
			return nil
		}
		rows := make([]models.TinSchemePoint, len(points))
		for i, p := range points {
			rows[i] = models.TinSchemePoint{SchemeID: scheme.ID, Seq: i, X: p.X, Y: p.Y, Z: p.Z}
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": scheme.ID})
}

// LoadScheme 将库中方案装入会话（等价于SetPoints，清空所有删除状态）
func (tc *TinController) LoadScheme(c *gin.Context) {
	session, ok := tc.session(c, c.Query("session"))
	if !ok {
		return
	}

	DB := models.DB
	var scheme models.TinScheme
	if err := DB.First(&scheme, c.Query("id")).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheme not found"})
		return
	}

	var rows []models.TinSchemePoint
	if err := DB.Where("scheme_id = ?", scheme.ID).Order("seq").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	points := make([]Tin.Point3D, len(rows))
	for i, row := range rows {
		points[i] = Tin.Point3D{X: row.X, Y: row.Y, Z: row.Z}
	}

	if err := session.Mesh.SetPoints(points); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"schemename":  scheme.SchemeName,
		"activecount": session.Mesh.ActiveCount(),
		"triangles":   len(session.Mesh.ActiveTriangles()),
	})
}

// GetSchemeList 方案列表
func (tc *TinController) GetSchemeList(c *gin.Context) {
	var schemes []models.TinScheme
	if err := models.DB.Order("id desc").Find(&schemes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schemes)
}
