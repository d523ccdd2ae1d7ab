package signal

import "strings"

// SplitTags はDB格納形式のカンマ結合文字列をタグのリストに分割する。
// 各要素はトリムされ、空要素は除去される。順序は入力のまま保持する。
// 有効なタグが1つも無い場合はnilを返す（射影では空リストではなく省略になる）。
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		out = append(out, t)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
