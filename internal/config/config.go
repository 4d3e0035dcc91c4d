package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr         string
	Port               string
	DatabasePath       string
	GinMode            string
	StaticDir          string
	HFAPIKey           string
	HFModel            string
	HFEndpoint         string
	AffirmationTimeout time.Duration
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "mindmend.db"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	staticDir := strings.TrimSpace(os.Getenv("STATIC_DIR"))
	if staticDir == "" {
		staticDir = "web/static"
	}

	hfModel := strings.TrimSpace(os.Getenv("HF_MODEL"))
	if hfModel == "" {
		hfModel = "google/gemma-2-2b-it"
	}

	hfEndpoint := strings.TrimSpace(os.Getenv("HF_ENDPOINT"))
	if hfEndpoint == "" {
		hfEndpoint = "https://router.huggingface.co/models"
	}

	timeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("AFFIRMATION_TIMEOUT_SECONDS")); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			timeout = time.Duration(seconds) * time.Second
		}
	}

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		DatabasePath:       databasePath,
		GinMode:            ginMode,
		StaticDir:          staticDir,
		HFAPIKey:           strings.TrimSpace(os.Getenv("HF_API_KEY")),
		HFModel:            hfModel,
		HFEndpoint:         hfEndpoint,
		AffirmationTimeout: timeout,
	}
}
