package services

import (
	"strings"

	"order-forecast-api/pkg/models"
)

// 期待される列名のマッピング（優先順）
var (
	statusColumnCandidates = []string{"order_status", "status", "order_state", "orderCondition"}
	dateColumnCandidates   = []string{"order_date", "date", "order_time", "purchase_date", "orderDate"}
)

// ResolveColumns ヘッダーから注文ステータス列と注文日列を解決する
// 候補リストの優先順で最初に見つかった列を採用する
func ResolveColumns(header []string) (models.ColumnMapping, error) {
	statusCol := findColumn(header, statusColumnCandidates)
	dateCol := findColumn(header, dateColumnCandidates)

	if statusCol == "" || dateCol == "" {
		var missing []string
		if statusCol == "" {
			missing = append(missing, "order_status")
		}
		if dateCol == "" {
			missing = append(missing, "order_date")
		}
		return models.ColumnMapping{}, newSchemaError("必要な列が見つかりませんでした: %s。ファイルのヘッダー行を確認してください。", strings.Join(missing, ", "))
	}

	return models.ColumnMapping{StatusColumn: statusCol, DateColumn: dateCol}, nil
}

// findColumn finds the first candidate present in the header, in candidate order
func findColumn(header []string, candidates []string) string {
	for _, candidate := range candidates {
		for _, col := range header {
			if strings.EqualFold(normalizeHeader(col), candidate) {
				return col
			}
		}
	}
	return ""
}

// normalizeHeader trims whitespace and stray quotes from a header cell
func normalizeHeader(col string) string {
	col = strings.TrimSpace(col)
	col = strings.ReplaceAll(col, `"`, "")
	return col
}

// columnIndex returns the index of the resolved column in the header
func columnIndex(header []string, column string) int {
	for i, col := range header {
		if col == column {
			return i
		}
	}
	return -1
}
