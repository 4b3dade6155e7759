package routers

import (
	"github.com/GrainArc/TinSurvey/views"
	"github.com/gin-gonic/gin"
)

func TinRouters(r *gin.Engine) {
	TinController := views.NewTinController()
	TinRouter := r.Group("/tin")
	{
		TinRouter.POST("/CreateSession", TinController.CreateSession)
		TinRouter.GET("/DelSession", TinController.DelSession)
		TinRouter.POST("/SetPoints", TinController.SetPoints)
		TinRouter.GET("/GetMesh", TinController.GetMesh)
		TinRouter.GET("/GetMeshGeojson", TinController.GetMeshGeojson)
		TinRouter.POST("/DeleteEdge", TinController.DeleteEdge)
		TinRouter.POST("/DeletePoint", TinController.DeletePoint)
		TinRouter.POST("/NearestPoint", TinController.NearestPoint)
		TinRouter.POST("/NearestEdge", TinController.NearestEdge)
		TinRouter.GET("/ExportDXF", TinController.ExportDXF)
		TinRouter.POST("/SaveScheme", TinController.SaveScheme)
		TinRouter.GET("/LoadScheme", TinController.LoadScheme)
		TinRouter.GET("/GetSchemeList", TinController.GetSchemeList)
		TinRouter.GET("/MeshNotify", TinController.MeshNotify)
	}
}
