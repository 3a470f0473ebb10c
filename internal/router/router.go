package router

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"shortfactory/internal/handler"
	"shortfactory/log"
)

func SetupRouter(r *gin.Engine) {
	api := r.Group("/api")

	hdl := handler.NewHandler()
	{
		api.POST("/video/create", hdl.CreateVideoTask)
		api.GET("/video/task", hdl.GetVideoTask)
		api.GET("/video/progress", hdl.TaskProgress)
		api.GET("/video/history", hdl.GetTaskHistory)
		api.DELETE("/video/task/:taskId", hdl.DeleteTask)
		api.GET("/templates", hdl.GetTemplates)
		api.POST("/file", hdl.UploadFile)
		api.GET("/file/*filepath", hdl.DownloadFile)
		api.HEAD("/file/*filepath", hdl.DownloadFile)
		api.GET("/config", hdl.GetConfig)
		api.POST("/config", hdl.UpdateConfig)
	}

	if _, err := os.Stat("static"); err == nil {
		log.GetLogger().Info("Using local static directory")
		r.Static("/static", "static")
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/static")
		})
	}
}
