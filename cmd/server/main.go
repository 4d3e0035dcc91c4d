package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mindmend/internal/config"
	"github.com/mindmend/internal/db"
	"github.com/mindmend/internal/handler"
	"github.com/mindmend/internal/router"
	"github.com/mindmend/internal/service"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	api := handler.NewAPI(db.DB, service.SystemSettings{
		AffirmationProvider: service.AffirmationProviderHuggingFace,
		HFAPIKey:            cfg.HFAPIKey,
		HFModel:             cfg.HFModel,
		HFEndpoint:          cfg.HFEndpoint,
	}, cfg.AffirmationTimeout)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.StaticDir)
	log.Printf("server listening at %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
