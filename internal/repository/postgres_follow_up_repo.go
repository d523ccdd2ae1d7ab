package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/signalboard/internal/model"
)

// PostgresFollowUpRepo はPostgreSQLを使用したフォローアップリポジトリ。
type PostgresFollowUpRepo struct {
	db *sql.DB
}

// NewPostgresFollowUpRepo はPostgresFollowUpRepoを生成する。
func NewPostgresFollowUpRepo(db *sql.DB) *PostgresFollowUpRepo {
	return &PostgresFollowUpRepo{db: db}
}

// Insert はフォローアップを条件付きで1回だけ挿入する。
//
// 勝者決定はsignal_idのUNIQUE制約を利用したON CONFLICT DO NOTHINGに委譲する。
// 存在確認してから挿入する方式は並行呼び出し間で競合するため使用しない。
// 既に同一signal_idの行が存在する場合、RETURNINGは行を返さず
// sql.ErrNoRowsとなるため、これを競合シグナルとして(nil, nil)を返す。
func (r *PostgresFollowUpRepo) Insert(ctx context.Context, signalID, userID string) (*model.FollowUp, error) {
	followUp := &model.FollowUp{
		SignalID: signalID,
		UserID:   userID,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO follow_ups (signal_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (signal_id) DO NOTHING
		 RETURNING id, followed_up_at`,
		signalID, userID,
	).Scan(&followUp.ID, &followUp.FollowedUpAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("フォローアップの挿入に失敗しました: %w", err)
	}

	return followUp, nil
}

// ListAll は全フォローアップをフォローアップ日時の降順で返す。
func (r *PostgresFollowUpRepo) ListAll(ctx context.Context) ([]*model.FollowUp, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, signal_id, user_id, followed_up_at
		 FROM follow_ups
		 ORDER BY followed_up_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("フォローアップ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanFollowUps(rows)
}

// ListBySignalID は指定シグナルのフォローアップを返す。
// UNIQUE制約が守られていれば最大1件だが、異常検出のため複数件をそのまま返す。
func (r *PostgresFollowUpRepo) ListBySignalID(ctx context.Context, signalID string) ([]*model.FollowUp, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, signal_id, user_id, followed_up_at
		 FROM follow_ups
		 WHERE signal_id = $1`,
		signalID,
	)
	if err != nil {
		return nil, fmt.Errorf("シグナルのフォローアップ取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanFollowUps(rows)
}

// scanFollowUps は結果セットからフォローアップのスライスを読み取る。
func scanFollowUps(rows *sql.Rows) ([]*model.FollowUp, error) {
	var followUps []*model.FollowUp
	for rows.Next() {
		followUp := &model.FollowUp{}
		if err := rows.Scan(
			&followUp.ID, &followUp.SignalID, &followUp.UserID, &followUp.FollowedUpAt,
		); err != nil {
			return nil, fmt.Errorf("フォローアップの読み取りに失敗しました: %w", err)
		}
		followUps = append(followUps, followUp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("フォローアップ一覧の走査に失敗しました: %w", err)
	}

	return followUps, nil
}

// compile-time interface check
var _ FollowUpRepository = (*PostgresFollowUpRepo)(nil)
