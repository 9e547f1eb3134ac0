package models

import "time"

// WeeklyPoint 1週間分の注文数（週の開始日は月曜）
type WeeklyPoint struct {
	WeekStart  time.Time `json:"week_start"`
	OrderCount int       `json:"order_count"`
}

// WeeklySeries 週次の注文数系列（日付昇順、週は重複しない）
type WeeklySeries []WeeklyPoint

// Counts 注文数のみをfloat64スライスとして返す
func (s WeeklySeries) Counts() []float64 {
	counts := make([]float64, len(s))
	for i, p := range s {
		counts[i] = float64(p.OrderCount)
	}
	return counts
}

// LastWeek 系列の最終週の開始日を返す
func (s WeeklySeries) LastWeek() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].WeekStart
}

// ColumnMapping ヘッダーから解決した列名のペア
type ColumnMapping struct {
	StatusColumn string
	DateColumn   string
}

// ForecastPoint 将来1週間分の予測値と信頼区間
type ForecastPoint struct {
	Date          string  `json:"date"`
	PointEstimate float64 `json:"point_estimate"`
	LowerBound    float64 `json:"lower_bound"`
	UpperBound    float64 `json:"upper_bound"`
}

// MetricSet ホールドアウト評価で得られた精度指標
type MetricSet struct {
	MAE float64 `json:"mae"`
	R2  float64 `json:"r2"`
}

// ChartPoint チャート描画用の (日付, 値) ペア
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ChartSeries ラベル付きの系列1本
type ChartSeries struct {
	Label  string       `json:"label"`
	Points []ChartPoint `json:"points"`
}

// ChartPayload チャート描画ライブラリに渡す構造
// 実績・予測・下限・上限の4系列を含む
type ChartPayload struct {
	Series []ChartSeries `json:"series"`
}

// ExactPrediction 画面表示用の予測値（日付と点推定のみ）
type ExactPrediction struct {
	Date          string  `json:"date"`
	PointEstimate float64 `json:"point_estimate"`
}

// ForecastResult 予測パイプラインの成功レスポンス
type ForecastResult struct {
	MAE              float64           `json:"mae"`
	R2               float64           `json:"r2"`
	ExactPredictions []ExactPrediction `json:"exact_predictions"`
	Plot             ChartPayload      `json:"plot"`
}
