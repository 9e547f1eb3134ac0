package services

import (
	"errors"
	"math"

	"github.com/sartorproj/goarima/sarima"
	"github.com/sartorproj/goarima/timeseries"
)

// 予測モデル選択のパラメータ
const (
	// confidenceZScore 95%信頼区間のz値
	confidenceZScore = 1.96
	// sarimaMinTrainWeeks SARIMAのCSS推定に必要な最小の学習週数
	// (p+d+q=3 に加えてライブラリが20点を要求するため、余裕を持たせる)
	sarimaMinTrainWeeks = 26
)

// Forecaster 週次系列に対する予測能力
// Fitで学習し、Predictで将来stepsステップ分の点予測と信頼区間を返す
type Forecaster interface {
	Fit(values []float64) error
	Predict(steps int) (point, lower, upper []float64, err error)
}

// NewForecaster 学習データの長さに応じて予測モデルを選択する
// 十分な履歴があればSARIMA、短い系列には線形トレンドモデルを使う
func NewForecaster(trainLen int) Forecaster {
	if trainLen >= sarimaMinTrainWeeks {
		return &sarimaForecaster{}
	}
	return &trendForecaster{}
}

// ------------------- 線形トレンドモデル -------------------

// trendForecaster 週番号に対する線形回帰で予測する
// 信頼区間は残差の標準偏差にz値を掛けて算出する
type trendForecaster struct {
	slope       float64
	intercept   float64
	residualStd float64
	n           int
	fitted      bool
}

// Fit 最小二乗法で傾きと切片を推定する
func (f *trendForecaster) Fit(values []float64) error {
	n := len(values)
	if n < 2 {
		return errors.New("学習には最低2週分のデータが必要です")
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	nf := float64(n)
	denominator := nf*sumXX - sumX*sumX
	if denominator == 0 {
		return errors.New("回帰係数を推定できません")
	}

	f.slope = (nf*sumXY - sumX*sumY) / denominator
	f.intercept = (sumY - f.slope*sumX) / nf

	// 残差の標準偏差（予測の不確実性）
	var sumSquaredResiduals float64
	for i, y := range values {
		predicted := f.slope*float64(i) + f.intercept
		residual := y - predicted
		sumSquaredResiduals += residual * residual
	}
	f.residualStd = math.Sqrt(sumSquaredResiduals / nf)

	f.n = n
	f.fitted = true
	return nil
}

// Predict 学習データの直後からstepsステップ分を予測する
func (f *trendForecaster) Predict(steps int) (point, lower, upper []float64, err error) {
	if !f.fitted {
		return nil, nil, nil, errors.New("予測の前にモデルを学習してください")
	}
	if steps < 1 {
		return nil, nil, nil, errors.New("予測ステップ数は1以上を指定してください")
	}

	margin := confidenceZScore * f.residualStd

	point = make([]float64, steps)
	lower = make([]float64, steps)
	upper = make([]float64, steps)
	for h := 0; h < steps; h++ {
		x := float64(f.n + h)
		point[h] = f.slope*x + f.intercept
		lower[h] = point[h] - margin
		upper[h] = point[h] + margin
	}

	return point, lower, upper, nil
}

// ------------------- SARIMAモデル -------------------

// sarimaForecaster goarimaのSARIMA(1,1,1)で予測する
type sarimaForecaster struct {
	model *sarima.Model
}

// Fit SARIMAモデルを学習する
func (f *sarimaForecaster) Fit(values []float64) error {
	model := sarima.New(1, 1, 1, 0, 0, 0, 0)
	if err := model.Fit(timeseries.New(values)); err != nil {
		return err
	}
	f.model = model
	return nil
}

// Predict 信頼区間付きで予測する
func (f *sarimaForecaster) Predict(steps int) (point, lower, upper []float64, err error) {
	if f.model == nil {
		return nil, nil, nil, errors.New("予測の前にモデルを学習してください")
	}
	return f.model.PredictWithInterval(steps, 0.95)
}
