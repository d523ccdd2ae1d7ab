package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/signalboard/internal/model"
)

// PostgresSignalRepo はPostgreSQLを使用したシグナルリポジトリ。
type PostgresSignalRepo struct {
	db *sql.DB
}

// NewPostgresSignalRepo はPostgresSignalRepoを生成する。
func NewPostgresSignalRepo(db *sql.DB) *PostgresSignalRepo {
	return &PostgresSignalRepo{db: db}
}

// Create はシグナルを作成する。
// IDとCreatedAtはDB側のデフォルト（gen_random_uuid() / now()）で付与されるため、
// RETURNINGで読み戻して作成後のレコードを返す。
func (r *PostgresSignalRepo) Create(ctx context.Context, signal *model.Signal) (*model.Signal, error) {
	created := &model.Signal{
		CreatorID:        signal.CreatorID,
		Mood:             signal.Mood,
		Note:             signal.Note,
		Tags:             signal.Tags,
		FollowUpRequired: signal.FollowUpRequired,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO signals (creator_id, mood, note, tags, follow_up_required)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		signal.CreatorID, string(signal.Mood), signal.Note,
		nullString(signal.Tags), signal.FollowUpRequired,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("シグナルの作成に失敗しました: %w", err)
	}

	return created, nil
}

// ListAll は全シグナルを作成日時の降順で返す。
// tagsはDB格納形式（カンマ結合文字列）のまま返し、分割はサービス層が行う。
func (r *PostgresSignalRepo) ListAll(ctx context.Context) ([]*model.Signal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, creator_id, mood, note, tags, follow_up_required, created_at
		 FROM signals
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("シグナル一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var signals []*model.Signal
	for rows.Next() {
		signal := &model.Signal{}
		var mood string
		var tags sql.NullString

		if err := rows.Scan(
			&signal.ID, &signal.CreatorID, &mood, &signal.Note,
			&tags, &signal.FollowUpRequired, &signal.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("シグナルの読み取りに失敗しました: %w", err)
		}

		signal.Mood = model.Mood(mood)
		signal.Tags = nullStringValue(tags)

		signals = append(signals, signal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("シグナル一覧の走査に失敗しました: %w", err)
	}

	return signals, nil
}

// nullString は空文字列をsql.NullStringに変換する。
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullStringValue はsql.NullStringから文字列を取得する。
func nullStringValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// compile-time interface check
var _ SignalRepository = (*PostgresSignalRepo)(nil)
