// Package filter はシグナル一覧の絞り込みを行う純粋なフィルタエンジンを提供する。
//
// エンジンはI/Oを一切行わない決定的な射影である。同じ入力
// （シグナル一覧、フォローアップ対応表、フィルタ仕様、現在アクター、基準時刻）
// に対して常に同じ順序の部分集合を返す。入力の順序は保持され、再ソートしない。
package filter

import (
	"strings"
	"time"
)

// Required はfollow_up_requiredフラグに対する三値フィルタ。
// 「未指定」と明示的なtrue/falseを区別するため、nullableなboolではなく列挙で表す。
type Required string

const (
	RequiredAny   Required = "any"
	RequiredTrue  Required = "true"
	RequiredFalse Required = "false"
)

// Has は導出されたフォローアップ有無に対する三値フィルタ。
type Has string

const (
	HasAny  Has = "any"
	HasHas  Has = "has"
	HasNone Has = "none"
)

// Window は作成日時の新しさに対するウィンドウフィルタ。
type Window string

const (
	WindowAll Window = "all"
	Window24h Window = "24h"
	Window7d  Window = "7d"
	Window30d Window = "30d"
)

// By は作成者に対する三値フィルタ。
type By string

const (
	ByAny By = "any"
	ByMe  By = "me"
)

// Spec はフィルタ仕様を表す。各フィールドは独立に省略可能で、
// ゼロ値相当（空集合・any・all）はそのフィールドでの絞り込みを行わない。
type Spec struct {
	Moods    []string // 空 = ムードで絞り込まない
	Tags     []string // OR意味論。空 = タグで絞り込まない
	Required Required
	Has      Has
	When     Window
	By       By
}

// Signal はエンジンが扱うシグナルのワイヤ射影。
// CreatedAtはISO-8601文字列のまま保持し、ウィンドウフィルタ適用時に解析する。
type Signal struct {
	ID               string
	CreatorID        string
	Mood             string
	Note             string
	Tags             []string
	FollowUpRequired bool
	CreatedAt        string
}

// FollowUp はエンジンが扱うフォローアップのワイヤ射影。
type FollowUp struct {
	ID           string
	SignalID     string
	UserID       string
	FollowedUpAt string
}

// Default は全フィールドが「絞り込みなし」のSpecを返す。
func Default() Spec {
	return Spec{
		Required: RequiredAny,
		Has:      HasAny,
		When:     WindowAll,
		By:       ByAny,
	}
}

// Normalize はSpecを正規化して返す。
// リストフィールドは小文字化・トリム・重複除去され、空要素と未知のムード値は
// 除去される。三値・ウィンドウフィールドの未知の値はデフォルトに落とす。
func Normalize(spec Spec) Spec {
	out := Default()

	out.Moods = normalizeList(spec.Moods, isValidMood)
	out.Tags = normalizeList(spec.Tags, nil)

	switch spec.Required {
	case RequiredTrue, RequiredFalse:
		out.Required = spec.Required
	}
	switch spec.Has {
	case HasHas, HasNone:
		out.Has = spec.Has
	}
	switch spec.When {
	case Window24h, Window7d, Window30d:
		out.When = spec.When
	}
	if spec.By == ByMe {
		out.By = ByMe
	}

	return out
}

// Apply はフィルタ仕様を満たすシグナルの部分集合を入力順のまま返す。
// followUpsはシグナルID→フォローアップの対応表（1シグナルにつき最大1件）。
// actorIDは現在アクターの識別子で、未判明の場合は空文字列を渡す。
// nowはウィンドウフィルタの基準時刻。
func Apply(signals []Signal, followUps map[string]FollowUp, spec Spec, actorID string, now time.Time) []Signal {
	spec = Normalize(spec)

	out := make([]Signal, 0, len(signals))
	for _, sig := range signals {
		if matches(sig, followUps, spec, actorID, now) {
			out = append(out, sig)
		}
	}
	return out
}

// matches は単一シグナルが全ての有効な述語を満たすかを返す（AND結合）。
func matches(sig Signal, followUps map[string]FollowUp, spec Spec, actorID string, now time.Time) bool {
	if len(spec.Moods) > 0 && !contains(spec.Moods, strings.ToLower(sig.Mood)) {
		return false
	}

	if len(spec.Tags) > 0 && !intersects(spec.Tags, sig.Tags) {
		return false
	}

	if spec.Required != RequiredAny {
		want := spec.Required == RequiredTrue
		if sig.FollowUpRequired != want {
			return false
		}
	}

	if spec.Has != HasAny {
		// 導出されたフォローアップ有無: follow_up_requiredがfalseのシグナルは、
		// フォローアップ行が存在していても「フォローアップなし」として扱う
		derived := false
		if sig.FollowUpRequired {
			_, derived = followUps[sig.ID]
		}
		want := spec.Has == HasHas
		if derived != want {
			return false
		}
	}

	if spec.When != WindowAll {
		createdAt, err := time.Parse(time.RFC3339, sig.CreatedAt)
		if err != nil {
			// ウィンドウが有効な場合、解析不能な作成日時はフィルタを通過しない
			return false
		}
		cutoff := now.Add(-windowDuration(spec.When))
		if createdAt.Before(cutoff) {
			return false
		}
	}

	if spec.By == ByMe {
		// アクター未判明の場合はフェイルクローズ（全て除外）
		if actorID == "" || sig.CreatorID != actorID {
			return false
		}
	}

	return true
}

// windowDuration はウィンドウの長さを返す。WindowAllに対しては呼ばれない。
func windowDuration(w Window) time.Duration {
	switch w {
	case Window24h:
		return 24 * time.Hour
	case Window7d:
		return 7 * 24 * time.Hour
	case Window30d:
		return 30 * 24 * time.Hour
	}
	return 0
}

// isValidMood はムード列挙値として有効かを返す。
func isValidMood(s string) bool {
	switch s {
	case "green", "yellow", "red":
		return true
	}
	return false
}

// normalizeList は小文字化・トリム・重複除去を行う。
// validが指定された場合、満たさない要素は除去する。順序は初出順を保持する。
// 結果が空の場合はnilを返す。
func normalizeList(values []string, valid func(string) bool) []string {
	if len(values) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		t := strings.ToLower(strings.TrimSpace(v))
		if t == "" {
			continue
		}
		if valid != nil && !valid(t) {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// contains はリストに値が含まれるかを返す。
func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// intersects は正規化済みフィルタタグとシグナルのタグが交差するかを返す。
// シグナル側のタグは比較時に小文字化・トリムして突き合わせる。
func intersects(filterTags, signalTags []string) bool {
	for _, tag := range signalTags {
		if contains(filterTags, strings.ToLower(strings.TrimSpace(tag))) {
			return true
		}
	}
	return false
}
