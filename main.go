package main

import (
	"log"

	"github.com/GrainArc/TinSurvey/config"
	"github.com/GrainArc/TinSurvey/models"
	"github.com/GrainArc/TinSurvey/routers"
	"github.com/gin-gonic/gin"
)

func main() {
	models.InitDB()

	r := gin.Default()
	routers.TinRouters(r)

	log.Printf("TinSurvey listening on %s", config.MainRouter)
	if err := r.Run(config.MainRouter); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
