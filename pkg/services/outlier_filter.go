package services

import "sort"

// IQRに基づく外れ値判定のパラメータ
const (
	// outlierIQRMultiplier Tukeyフェンスの係数k
	outlierIQRMultiplier = 1.5
	// minOutlierSample 四分位数を推定できる最小のデータ件数
	minOutlierSample = 4
)

// outlierIndexes 四分位範囲（IQR）に基づいて外れ値のインデックスを返す
// [Q1 - k*IQR, Q3 + k*IQR] の範囲外の値を外れ値とみなす
// データが少なく四分位数を推定できない場合は何も除外しない
func outlierIndexes(values []float64) map[int]bool {
	dropped := make(map[int]bool)
	if len(values) < minOutlierSample {
		return dropped
	}

	q1, q3 := quartiles(values)
	iqr := q3 - q1
	lowerFence := q1 - outlierIQRMultiplier*iqr
	upperFence := q3 + outlierIQRMultiplier*iqr

	for i, v := range values {
		if v < lowerFence || v > upperFence {
			dropped[i] = true
		}
	}

	return dropped
}

// quartiles 第1四分位数と第3四分位数を計算する（下半分・上半分の中央値方式）
func quartiles(values []float64) (q1, q3 float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	lower := sorted[:mid]
	var upper []float64
	if len(sorted)%2 == 0 {
		upper = sorted[mid:]
	} else {
		upper = sorted[mid+1:]
	}

	return median(lower), median(upper)
}

// median 中央値を計算する（入力はソート済み）
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
