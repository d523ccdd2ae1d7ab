// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/signalboard/internal/model"
)

// SignalRepository はシグナルデータの永続化インターフェース。
// シグナルは追記専用であり、更新・削除のメソッドは提供しない。
type SignalRepository interface {
	// Create はシグナルを作成する。
	// IDとCreatedAtはDB側で採番・付与され、作成後のレコードを返す。
	Create(ctx context.Context, signal *model.Signal) (*model.Signal, error)

	// ListAll は全シグナルを作成日時の降順で返す。
	ListAll(ctx context.Context) ([]*model.Signal, error)
}

// FollowUpRepository はフォローアップデータの永続化インターフェース。
// signal_idカラムのUNIQUE制約が唯一の直列化ポイントであり、
// 並行する挿入の勝者決定はストアに委譲する。
type FollowUpRepository interface {
	// Insert はフォローアップを条件付きで1回だけ挿入する。
	// 同一signal_idのフォローアップが既に存在する場合は何も挿入せずnilを返す
	// （エラーではない）。挿入に成功した場合は作成されたレコードを返す。
	Insert(ctx context.Context, signalID, userID string) (*model.FollowUp, error)

	// ListAll は全フォローアップをフォローアップ日時の降順で返す。
	ListAll(ctx context.Context) ([]*model.FollowUp, error)

	// ListBySignalID は指定シグナルのフォローアップを返す。
	// UNIQUE制約により通常は最大1件だが、制約違反の異常系を検出できるよう
	// 複数件をそのまま返す。
	ListBySignalID(ctx context.Context, signalID string) ([]*model.FollowUp, error)
}
