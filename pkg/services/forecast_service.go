package services

import (
	"log"
	"math"

	"order-forecast-api/pkg/models"
)

// ForecastService アップロードされた注文データから週次予測を生成する
type ForecastService struct {
	horizonWeeks  int
	seriesBuilder *SeriesBuilder
}

// NewForecastService 新しい予測サービスを作成
// ホールドアウト週数は予測期間と同じ長さにする
func NewForecastService(horizonWeeks, minTrainWeeks int) *ForecastService {
	return &ForecastService{
		horizonWeeks:  horizonWeeks,
		seriesBuilder: NewSeriesBuilder(horizonWeeks + minTrainWeeks),
	}
}

// Run 予測パイプラインを実行する
// 列解決 → 系列構築 → ホールドアウト評価 → 全期間で再学習 → レスポンス組み立て
func (s *ForecastService) Run(header []string, rows [][]string) (*models.ForecastResult, error) {
	mapping, err := ResolveColumns(header)
	if err != nil {
		return nil, err
	}
	log.Printf("[予測] 列を解決: status=%s, date=%s", mapping.StatusColumn, mapping.DateColumn)

	series, err := s.seriesBuilder.Build(header, rows, mapping)
	if err != nil {
		return nil, err
	}
	log.Printf("[予測] 週次系列を構築: %d週 (%s 〜 %s)",
		len(series),
		series[0].WeekStart.Format("2006-01-02"),
		series.LastWeek().Format("2006-01-02"))

	// 評価と最終予測で同じモデル系列を使うため、学習区間の長さで一度だけ選択する
	trainLen := len(series) - s.horizonWeeks

	metrics, err := Evaluate(series, s.horizonWeeks, NewForecaster(trainLen))
	if err != nil {
		return nil, err
	}
	log.Printf("[予測] ホールドアウト評価: MAE=%.2f, R²=%.3f", metrics.MAE, metrics.R2)

	forecast, err := s.produce(series, NewForecaster(trainLen))
	if err != nil {
		return nil, err
	}

	return assembleResult(series, forecast, metrics), nil
}

// produce 全期間の系列で再学習し、予測期間分のForecastPointを生成する
func (s *ForecastService) produce(series models.WeeklySeries, forecaster Forecaster) ([]models.ForecastPoint, error) {
	if err := forecaster.Fit(series.Counts()); err != nil {
		return nil, newModelError("予測モデルの学習に失敗しました。", err)
	}

	point, lower, upper, err := forecaster.Predict(s.horizonWeeks)
	if err != nil {
		return nil, newModelError("予測の生成に失敗しました。", err)
	}

	points := make([]models.ForecastPoint, s.horizonWeeks)
	for h := 0; h < s.horizonWeeks; h++ {
		// 最終週の翌週から連続した週次の日付を割り当てる
		date := series.LastWeek().AddDate(0, 0, 7*(h+1))

		// 注文数は負にならないため、点推定と下限は0で打ち切る
		estimate := math.Max(0, point[h])
		lo := math.Max(0, math.Min(lower[h], estimate))
		hi := math.Max(upper[h], estimate)

		points[h] = models.ForecastPoint{
			Date:          date.Format("2006-01-02"),
			PointEstimate: estimate,
			LowerBound:    lo,
			UpperBound:    hi,
		}
	}

	return points, nil
}

// assembleResult 実績・予測・指標をチャート用の構造にまとめる
// 入力は変更せず、検証済みデータの整形のみを行う
func assembleResult(series models.WeeklySeries, forecast []models.ForecastPoint, metrics models.MetricSet) *models.ForecastResult {
	actual := make([]models.ChartPoint, len(series))
	for i, p := range series {
		actual[i] = models.ChartPoint{
			Date:  p.WeekStart.Format("2006-01-02"),
			Value: float64(p.OrderCount),
		}
	}

	forecastPoints := make([]models.ChartPoint, len(forecast))
	lowerPoints := make([]models.ChartPoint, len(forecast))
	upperPoints := make([]models.ChartPoint, len(forecast))
	exact := make([]models.ExactPrediction, len(forecast))

	for i, p := range forecast {
		forecastPoints[i] = models.ChartPoint{Date: p.Date, Value: p.PointEstimate}
		lowerPoints[i] = models.ChartPoint{Date: p.Date, Value: p.LowerBound}
		upperPoints[i] = models.ChartPoint{Date: p.Date, Value: p.UpperBound}
		exact[i] = models.ExactPrediction{Date: p.Date, PointEstimate: p.PointEstimate}
	}

	return &models.ForecastResult{
		MAE:              metrics.MAE,
		R2:               metrics.R2,
		ExactPredictions: exact,
		Plot: models.ChartPayload{
			Series: []models.ChartSeries{
				{Label: "actual", Points: actual},
				{Label: "forecast", Points: forecastPoints},
				{Label: "lower_bound", Points: lowerPoints},
				{Label: "upper_bound", Points: upperPoints},
			},
		},
	}
}
