package services

import (
	"errors"
	"fmt"
)

// ErrorKind パイプラインエラーの分類
type ErrorKind string

const (
	// KindSchema 必須列がヘッダーから解決できない
	KindSchema ErrorKind = "schema"
	// KindData クリーニング後にデータが空、または週数が不足
	KindData ErrorKind = "data"
	// KindModel 予測モデルの学習・予測に失敗
	KindModel ErrorKind = "model"
	// KindTransport アップロードがテーブルとして読み取れない
	KindTransport ErrorKind = "transport"
)

// PipelineError 分類付きのパイプラインエラー
type PipelineError struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func (e *PipelineError) Error() string {
	return e.msg
}

func (e *PipelineError) Unwrap() error {
	return e.cause
}

func newSchemaError(format string, args ...interface{}) *PipelineError {
	return &PipelineError{Kind: KindSchema, msg: fmt.Sprintf(format, args...)}
}

func newDataError(format string, args ...interface{}) *PipelineError {
	return &PipelineError{Kind: KindData, msg: fmt.Sprintf(format, args...)}
}

func newModelError(msg string, cause error) *PipelineError {
	return &PipelineError{Kind: KindModel, msg: msg, cause: cause}
}

// NewTransportError アップロード読み取り失敗のエラーを作成
func NewTransportError(msg string, cause error) *PipelineError {
	return &PipelineError{Kind: KindTransport, msg: msg, cause: cause}
}

// KindOf エラーの分類を返す（分類できない場合はKindModel）
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindModel
}
