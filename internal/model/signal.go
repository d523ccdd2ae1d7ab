// Package model はドメインモデルを定義する。
package model

import "time"

// Mood はシグナルの気分ステータスを表す。
type Mood string

const (
	// MoodGreen は「順調」を表す。
	MoodGreen Mood = "green"
	// MoodYellow は「注意が必要」を表す。
	MoodYellow Mood = "yellow"
	// MoodRed は「問題あり・ブロック中」を表す。
	MoodRed Mood = "red"
)

// Valid はMoodが定義済みの3値のいずれかであるかを返す。
func (m Mood) Valid() bool {
	switch m {
	case MoodGreen, MoodYellow, MoodRed:
		return true
	}
	return false
}

// NoteMaxLength はノートの最大文字数。
const NoteMaxLength = 300

// Signal はチームメンバーが投稿する気分シグナルを表す。
// 作成後は不変であり、更新・削除の経路は存在しない。
// TagsはDB格納形式（カンマ結合文字列、空は""）をそのまま保持する。
// 読み取り射影でのタグ分割はサービス層が行う。
type Signal struct {
	ID               string
	CreatorID        string
	Mood             Mood
	Note             string
	Tags             string
	FollowUpRequired bool
	CreatedAt        time.Time
}

// FollowUp はシグナルに対するフォローアップ記録を表す。
// signal_idカラムのUNIQUE制約により、1シグナルにつき最大1件しか存在しない。
// 作成後は不変であり、削除されることはない。
type FollowUp struct {
	ID           string
	SignalID     string
	UserID       string
	FollowedUpAt time.Time
}
