package main

import (
	"log"

	config "order-forecast-api/configs"
	"order-forecast-api/pkg/handlers"
	"order-forecast-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()

	// Ginルーターの初期化
	r := gin.Default()

	// サービスの初期化
	forecastService := services.NewForecastService(cfg.ForecastHorizonWeeks, cfg.MinTrainWeeks)

	// ハンドラーの初期化
	forecastHandler := handlers.NewForecastHandler(forecastService)

	// ミドルウェアの登録
	r.Use(cors.Default())

	// ヘルスチェックエンドポイント
	r.GET("/health", handlers.HealthCheck)

	// APIバージョン1のルートグループ
	v1 := r.Group("/api/v1")
	{
		// 週次予測API
		v1.POST("/forecast", forecastHandler.Forecast)
	}

	log.Printf("Starting Order Forecast API server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
