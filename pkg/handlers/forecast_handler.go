package handlers

import (
	"encoding/csv"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"order-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ForecastHandler 注文データのアップロードと週次予測のハンドラー
type ForecastHandler struct {
	forecastService *services.ForecastService
}

// NewForecastHandler 新しい予測ハンドラーを作成
func NewForecastHandler(forecastService *services.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// Forecast アップロードされたCSV/Excelから週次予測を生成する
func (fh *ForecastHandler) Forecast(c *gin.Context) {
	start := time.Now()

	c.Request.ParseMultipartForm(10 << 20) // 10MB limit

	file, fileHeader, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ファイルの取得に失敗しました。CSVファイルをアップロードしてください。"})
		return
	}
	defer file.Close()

	fileName := fileHeader.Filename
	rows, err := readRows(file, fileName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(rows) < 2 { // Header + at least one data row
		c.JSON(http.StatusBadRequest, gin.H{"error": "ファイルにはヘッダー行と少なくとも1行のデータが必要です。"})
		return
	}

	result, err := fh.forecastService.Run(rows[0], rows[1:])
	if err != nil {
		status := http.StatusBadRequest
		if services.KindOf(err) == services.KindModel {
			// モデル内部の失敗詳細はログに残し、そのままは返さない
			log.Printf("[予測] モデルエラー: %v", err)
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[予測] %s の処理完了 (%d行, 所要時間: %v)", fileName, len(rows)-1, time.Since(start))
	c.JSON(http.StatusOK, result)
}

// readRows アップロードされたファイルを拡張子に応じて行データに変換する
func readRows(file multipart.File, fileName string) ([][]string, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(fileName), ".xlsx"):
		f, err := excelize.OpenReader(file)
		if err != nil {
			log.Printf("[予測] Excelファイルの読み込みに失敗: %v", err)
			return nil, services.NewTransportError("ファイルを読み取れませんでした。", err)
		}
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			log.Printf("[予測] Excelシートの行取得に失敗: %v", err)
			return nil, services.NewTransportError("ファイルを読み取れませんでした。", err)
		}
		return rows, nil
	case strings.HasSuffix(strings.ToLower(fileName), ".csv"):
		r := csv.NewReader(file)
		r.LazyQuotes = true
		rows, err := r.ReadAll()
		if err != nil {
			log.Printf("[予測] CSVファイルの解析に失敗: %v", err)
			return nil, services.NewTransportError("ファイルを読み取れませんでした。", err)
		}
		return rows, nil
	default:
		return nil, services.NewTransportError("サポートされていないファイル形式です。.csvまたは.xlsxをアップロードしてください。", nil)
	}
}
