// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, conflict, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeFollowUpConflict = "FOLLOW_UP_CONFLICT"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
)

// NewValidationFailedError は入力検証エラーを生成する。
// フィールドごとの詳細はハンドラー側のレスポンスに含める。
func NewValidationFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  "入力内容に誤りがあります。",
		Category: "validation",
		Action:   "各フィールドのエラーメッセージを確認して修正してください。",
	}
}

// NewFollowUpConflictError は並行フォローアップ競合の敗者に返すエラーを生成する。
// システム障害ではなく、期待される正常系の一つとして扱う。
func NewFollowUpConflictError() *APIError {
	return &APIError{
		Code:     ErrCodeFollowUpConflict,
		Message:  "このシグナルのフォローアップは既に別のユーザーによって記録されています。",
		Category: "conflict",
		Action:   "一覧を再読み込みして最新の状態を確認してください。",
	}
}

// NewDatabaseError はストア起因の汎用エラーを生成する。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func NewDatabaseError() *APIError {
	return &APIError{
		Code:     ErrCodeDatabaseError,
		Message:  "データベースエラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
