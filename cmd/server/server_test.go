package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	config "order-forecast-api/configs"
	"order-forecast-api/pkg/handlers"
	"order-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// テスト環境の設定
	gin.SetMode(gin.TestMode)

	// .envファイルを読み込み（テスト環境では無視される可能性がある）
	godotenv.Load("../../.env")

	// テスト実行
	code := m.Run()

	// 終了
	os.Exit(code)
}

func TestApplicationSetup(t *testing.T) {
	// 設定の読み込みテスト
	cfg := config.LoadConfig()
	assert.NotNil(t, cfg, "Config should not be nil")
	assert.Greater(t, cfg.ForecastHorizonWeeks, 0, "ForecastHorizonWeeks should be positive")
	assert.Greater(t, cfg.MinTrainWeeks, 0, "MinTrainWeeks should be positive")

	// サービスの初期化テスト
	forecastService := services.NewForecastService(cfg.ForecastHorizonWeeks, cfg.MinTrainWeeks)
	assert.NotNil(t, forecastService, "ForecastService should not be nil")

	// ハンドラーの初期化テスト
	forecastHandler := handlers.NewForecastHandler(forecastService)
	assert.NotNil(t, forecastHandler, "ForecastHandler should not be nil")
}

func TestRouterSetup(t *testing.T) {
	// ルーターの初期化
	r := gin.New()

	// ヘルスチェックエンドポイント
	r.GET("/health", handlers.HealthCheck)

	// APIバージョン1のルートグループ
	forecastService := services.NewForecastService(5, 4)
	forecastHandler := handlers.NewForecastHandler(forecastService)
	v1 := r.Group("/api/v1")
	{
		v1.POST("/forecast", forecastHandler.Forecast)
	}

	// ヘルスチェックのテスト
	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	// ファイルなしの予測リクエストは400を返す
	req, _ = http.NewRequest("POST", "/api/v1/forecast", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
