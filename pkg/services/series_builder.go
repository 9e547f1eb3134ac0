package services

import (
	"log"
	"sort"
	"strings"
	"time"

	"order-forecast-api/pkg/models"
)

// completedStatuses 有効な注文とみなすステータスの許可リスト（小文字で比較）
var completedStatuses = map[string]bool{
	"completed": true,
	"complete":  true,
	"delivered": true,
	"shipped":   true,
	"closed":    true,
	"paid":      true,
	"доставлен": true,
	"завершен":  true,
	"оплачен":   true,
}

// dateFormats 注文日のパースに試す形式（この順で試行）
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// SeriesBuilder 生の行データから週次注文数系列を構築する
type SeriesBuilder struct {
	minRequiredWeeks int
}

// NewSeriesBuilder 新しいSeriesBuilderを作成
func NewSeriesBuilder(minRequiredWeeks int) *SeriesBuilder {
	return &SeriesBuilder{minRequiredWeeks: minRequiredWeeks}
}

// Build ステータスフィルタ・日付パース・週次集約・外れ値除去を適用して
// 週次注文数系列を構築する
func (b *SeriesBuilder) Build(header []string, rows [][]string, mapping models.ColumnMapping) (models.WeeklySeries, error) {
	statusIdx := columnIndex(header, mapping.StatusColumn)
	dateIdx := columnIndex(header, mapping.DateColumn)
	if statusIdx < 0 || dateIdx < 0 {
		return nil, newSchemaError("解決した列がヘッダーに存在しません: %s, %s", mapping.StatusColumn, mapping.DateColumn)
	}

	// 週の開始日（月曜）ごとの注文数
	weekCounts := make(map[time.Time]int)
	parsed := 0

	for _, row := range rows {
		if statusIdx >= len(row) || dateIdx >= len(row) {
			continue
		}

		status := strings.ToLower(strings.TrimSpace(row[statusIdx]))
		if !completedStatuses[status] {
			continue
		}

		t, ok := parseOrderDate(strings.TrimSpace(row[dateIdx]))
		if !ok {
			continue
		}

		weekCounts[weekStart(t)]++
		parsed++
	}

	if parsed == 0 {
		return nil, newDataError("クリーニング後に有効な注文データがありません。注文ステータスと注文日を確認してください。")
	}

	series := make(models.WeeklySeries, 0, len(weekCounts))
	for week, count := range weekCounts {
		series = append(series, models.WeeklyPoint{WeekStart: week, OrderCount: count})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].WeekStart.Before(series[j].WeekStart)
	})

	// 外れ値の週は補正せず系列から除外する（欠損週は許容）
	dropped := outlierIndexes(series.Counts())
	if len(dropped) > 0 {
		log.Printf("[系列構築] 外れ値として %d 週を除外しました", len(dropped))
		filtered := make(models.WeeklySeries, 0, len(series)-len(dropped))
		for i, p := range series {
			if !dropped[i] {
				filtered = append(filtered, p)
			}
		}
		series = filtered
	}

	if len(series) < b.minRequiredWeeks {
		return nil, newDataError("予測に必要な週数が不足しています（%d週、最低%d週必要）。より多くのデータを提供してください。", len(series), b.minRequiredWeeks)
	}

	return series, nil
}

// parseOrderDate parses a date cell against the known format chain
func parseOrderDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// weekStart 日付をその週の月曜0時に丸める
func weekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // 日曜日
		weekday = 7
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
