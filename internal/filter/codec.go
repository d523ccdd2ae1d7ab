package filter

import (
	"net/url"
	"strings"
)

// フィルタ状態のフラットなエンコードで使用するパラメータ名。
// 各フィールドは最大1つのパラメータに対応する。
const (
	paramMood     = "mood"
	paramTags     = "tags"
	paramRequired = "required"
	paramHas      = "has"
	paramWhen     = "when"
	paramBy       = "by"
)

// Encode はSpecをフラットな文字列キーのエンコードに変換する。
// リストフィールドは重複除去・小文字化の後カンマ結合され、
// デフォルト値のフィールドはエンコードから完全に省略される。
// Decodeと正規化を除いて逆操作の関係にある: Decode(Encode(f)) == Normalize(f)。
func Encode(spec Spec) url.Values {
	spec = Normalize(spec)
	values := url.Values{}

	if len(spec.Moods) > 0 {
		values.Set(paramMood, strings.Join(spec.Moods, ","))
	}
	if len(spec.Tags) > 0 {
		values.Set(paramTags, strings.Join(spec.Tags, ","))
	}
	if spec.Required != RequiredAny {
		values.Set(paramRequired, string(spec.Required))
	}
	if spec.Has != HasAny {
		values.Set(paramHas, string(spec.Has))
	}
	if spec.When != WindowAll {
		values.Set(paramWhen, string(spec.When))
	}
	if spec.By != ByAny {
		values.Set(paramBy, string(spec.By))
	}

	return values
}

// Decode はフラットなエンコードからSpecを復元する。
// 欠けているパラメータはデフォルト値になり、結果は正規化済みで返る。
func Decode(values url.Values) Spec {
	spec := Spec{
		Required: Required(values.Get(paramRequired)),
		Has:      Has(values.Get(paramHas)),
		When:     Window(values.Get(paramWhen)),
		By:       By(values.Get(paramBy)),
	}

	if raw := values.Get(paramMood); raw != "" {
		spec.Moods = strings.Split(raw, ",")
	}
	if raw := values.Get(paramTags); raw != "" {
		spec.Tags = strings.Split(raw, ",")
	}

	return Normalize(spec)
}
