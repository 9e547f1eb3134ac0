package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupForecastRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewForecastHandler(services.NewForecastService(5, 4))
	r.POST("/api/v1/forecast", handler.Forecast)
	return r
}

// uploadCSV マルチパートフォームでCSVをアップロードする
func uploadCSV(t *testing.T, router *gin.Engine, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/api/v1/forecast", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ordersCSV 毎週同数の注文を含むCSVを生成する（2024-01-01開始、月曜基準）
func ordersCSV(weeks, perWeek int) string {
	var buf bytes.Buffer
	buf.WriteString("order_status,order_date\n")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for week := 0; week < weeks; week++ {
		for i := 0; i < perWeek; i++ {
			date := base.AddDate(0, 0, 7*week+i%7)
			fmt.Fprintf(&buf, "completed,%s\n", date.Format("2006-01-02"))
		}
	}
	return buf.String()
}

func TestForecastEndpointSuccess(t *testing.T) {
	router := setupForecastRouter()

	w := uploadCSV(t, router, "orders.csv", ordersCSV(12, 100))
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "mae")
	assert.Contains(t, body, "r2")
	assert.Contains(t, body, "exact_predictions")
	assert.Contains(t, body, "plot")
	assert.NotContains(t, body, "error")

	predictions := body["exact_predictions"].([]interface{})
	assert.Len(t, predictions, 5)
}

func TestForecastEndpointMissingDateColumn(t *testing.T) {
	router := setupForecastRouter()

	csv := "order_status,amount\ncompleted,120\ncompleted,80\n"
	w := uploadCSV(t, router, "orders.csv", csv)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	// 失敗時は error のみを返し、欠けている列名を含める
	assert.Contains(t, body["error"], "order_date")
	assert.NotContains(t, body, "mae")
	assert.NotContains(t, body, "plot")
}

func TestForecastEndpointInsufficientHistory(t *testing.T) {
	router := setupForecastRouter()

	w := uploadCSV(t, router, "orders.csv", ordersCSV(3, 10))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestForecastEndpointUnsupportedExtension(t *testing.T) {
	router := setupForecastRouter()

	w := uploadCSV(t, router, "orders.txt", "order_status,order_date\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], ".csv")
}

func TestForecastEndpointMissingFile(t *testing.T) {
	router := setupForecastRouter()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/api/v1/forecast", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForecastEndpointHeaderOnly(t *testing.T) {
	router := setupForecastRouter()

	w := uploadCSV(t, router, "orders.csv", "order_status,order_date\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "ヘッダー")
}
