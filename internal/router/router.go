package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mindmend/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, staticDir string) *gin.Engine {
	r := gin.Default()

	// 静态文件服务，前端页面由这里托管
	if staticDir != "" {
		r.Static("/static", staticDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/entries", api.GetEntries)
	r.POST("/entries", api.CreateEntry)
	r.GET("/entries/dates/:date", api.GetEntriesByDate)
	r.GET("/entries/:id", api.GetEntry)
	r.DELETE("/entries/:id", api.DeleteEntry)

	r.POST("/generate-affirmation", api.GenerateAffirmation)

	// 清库接口只在非 release 模式注册
	if gin.Mode() != gin.ReleaseMode {
		r.DELETE("/dev/entries", api.WipeEntries)
	}

	return r
}
