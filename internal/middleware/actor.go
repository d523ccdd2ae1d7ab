// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// actorIDHeaderName はクライアントが自己申告するアクター識別子のヘッダー名。
const actorIDHeaderName = "X-Actor-ID"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// actorIDContextKey はリクエストコンテキストにアクターIDを格納するためのキー。
var actorIDContextKey = contextKey("actor_id")

// NewActorMiddleware はX-Actor-IDヘッダーからアクター識別子を読み取り、
// リクエストコンテキストに注入するミドルウェアを返す。
//
// アクター識別子は認証情報ではなく、クライアントが自己割り当てする不透明な
// トークンである。検証は形式（UUID）のみで、形式不正のヘッダーは無視して
// アクター未判明のままリクエストを通す。セッションと異なり401は返さない。
func NewActorMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorID := r.Header.Get(actorIDHeaderName)
			if actorID == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := uuid.Parse(actorID); err != nil {
				// 形式不正のトークンはアクター未判明として扱う
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), actorIDContextKey, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorIDFromContext はリクエストコンテキストからアクターIDを取得する。
// アクターミドルウェアを通過し、かつ有効なヘッダーが存在した場合のみ有効。
func ActorIDFromContext(ctx context.Context) (string, error) {
	actorID, ok := ctx.Value(actorIDContextKey).(string)
	if !ok || actorID == "" {
		return "", fmt.Errorf("actor ID not found in context")
	}
	return actorID, nil
}

// ContextWithActorID はコンテキストにアクターIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDContextKey, actorID)
}
