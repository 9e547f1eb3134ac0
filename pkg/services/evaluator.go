package services

import (
	"math"

	"order-forecast-api/pkg/models"
)

// splitSeries 系列を学習区間と末尾のホールドアウト区間に分割する
// 時系列の順序は保持する（シャッフルしない）
func splitSeries(series models.WeeklySeries, holdoutWeeks int) (train, holdout models.WeeklySeries) {
	split := len(series) - holdoutWeeks
	return series[:split], series[split:]
}

// Evaluate 学習区間でモデルを学習し、ホールドアウト区間に対する
// MAEとR²を計算する
func Evaluate(series models.WeeklySeries, holdoutWeeks int, forecaster Forecaster) (models.MetricSet, error) {
	train, holdout := splitSeries(series, holdoutWeeks)

	if err := forecaster.Fit(train.Counts()); err != nil {
		return models.MetricSet{}, newModelError("予測モデルの学習に失敗しました。", err)
	}

	predicted, _, _, err := forecaster.Predict(len(holdout))
	if err != nil {
		return models.MetricSet{}, newModelError("予測の生成に失敗しました。", err)
	}

	actual := holdout.Counts()
	return models.MetricSet{
		MAE: meanAbsoluteError(actual, predicted),
		R2:  rSquared(actual, predicted),
	}, nil
}

// meanAbsoluteError 実績と予測の絶対誤差の平均を計算する
func meanAbsoluteError(actual, predicted []float64) float64 {
	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// rSquared 決定係数を計算する
// 実績の分散がゼロの場合はNaNではなく0を返す
func rSquared(actual, predicted []float64) float64 {
	mean := 0.0
	for _, v := range actual {
		mean += v
	}
	mean /= float64(len(actual))

	var ssRes, ssTot float64
	for i := range actual {
		residual := actual[i] - predicted[i]
		ssRes += residual * residual
		deviation := actual[i] - mean
		ssTot += deviation * deviation
	}

	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
