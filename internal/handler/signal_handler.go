// Package handler はHTTP APIのハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/signalboard/internal/filter"
	"github.com/hitoshi/signalboard/internal/middleware"
	"github.com/hitoshi/signalboard/internal/model"
	"github.com/hitoshi/signalboard/internal/signal"
)

// SignalServiceInterface はシグナルハンドラーが必要とするサービスインターフェース。
type SignalServiceInterface interface {
	// Create はシグナルを検証して作成する。
	Create(ctx context.Context, in signal.CreateInput) (*model.Signal, signal.FieldErrors, error)
	// List は全シグナルを作成日時の降順で返す。
	List(ctx context.Context) ([]signal.SignalInfo, error)
}

// FollowUpLister はhasフィルタ適用時に必要なフォローアップ読み取りのインターフェース。
type FollowUpLister interface {
	List(ctx context.Context, signalID string) ([]*model.FollowUp, error)
}

// SignalHandler はシグナルのHTTPハンドラー。
type SignalHandler struct {
	service        SignalServiceInterface
	followUpLister FollowUpLister
}

// NewSignalHandler はSignalHandlerを生成する。
func NewSignalHandler(service SignalServiceInterface, followUpLister FollowUpLister) *SignalHandler {
	return &SignalHandler{
		service:        service,
		followUpLister: followUpLister,
	}
}

// --- レスポンス型 ---

// signalResponse はシグナル射影のレスポンス。
// タグが無い場合、tagsフィールドは空リストではなく完全に省略される。
type signalResponse struct {
	ID               string   `json:"id"`
	CreatorID        string   `json:"creatorId"`
	Mood             string   `json:"mood"`
	Note             string   `json:"note"`
	Tags             []string `json:"tags,omitempty"`
	FollowUpRequired bool     `json:"followUpRequired"`
	CreatedAt        string   `json:"createdAt"`
}

// signalFormResponse はシグナル作成フォーム送信の結果レスポンス。
// 検証失敗時はフィールドごとのエラーメッセージのリストを含む。
type signalFormResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ListSignals はシグナル一覧を取得する。
// GET /api/signals?mood=red,yellow&tags=urgent&required=true&has=none&when=24h&by=me
//
// クエリパラメータはフィルタ仕様のフラットなエンコードであり、
// フィルタエンジンをサーバー側でも適用する。常に最新のコミット済み状態を返し、
// キャッシュは無効化する。
func (h *SignalHandler) ListSignals(w http.ResponseWriter, r *http.Request) {
	infos, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	views := make([]filter.Signal, len(infos))
	for i, info := range infos {
		views[i] = filter.Signal{
			ID:               info.ID,
			CreatorID:        info.CreatorID,
			Mood:             string(info.Mood),
			Note:             info.Note,
			Tags:             info.Tags,
			FollowUpRequired: info.FollowUpRequired,
			CreatedAt:        info.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	spec := filter.Decode(r.URL.Query())

	// hasフィルタが有効な場合のみフォローアップ対応表を構築する
	followUps := map[string]filter.FollowUp{}
	if spec.Has != filter.HasAny {
		all, err := h.followUpLister.List(r.Context(), "")
		if err != nil {
			handleServiceError(w, err)
			return
		}
		for _, fu := range all {
			followUps[fu.SignalID] = filter.FollowUp{
				ID:           fu.ID,
				SignalID:     fu.SignalID,
				UserID:       fu.UserID,
				FollowedUpAt: fu.FollowedUpAt.UTC().Format(time.RFC3339),
			}
		}
	}

	// アクター未判明の場合は空文字列のまま渡す（by=meはフェイルクローズ）
	actorID, _ := middleware.ActorIDFromContext(r.Context())

	filtered := filter.Apply(views, followUps, spec, actorID, time.Now().UTC())

	results := make([]signalResponse, len(filtered))
	for i, view := range filtered {
		results[i] = signalResponse{
			ID:               view.ID,
			CreatorID:        view.CreatorID,
			Mood:             view.Mood,
			Note:             view.Note,
			Tags:             view.Tags,
			FollowUpRequired: view.FollowUpRequired,
			CreatedAt:        view.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(results)
}

// CreateSignal はフォーム送信からシグナルを作成する。
// POST /api/signals（application/x-www-form-urlencoded）
//
// 検証失敗時は422でフィールドごとのエラーを返し、ストアには触れない。
// ストア障害時は500で一般的な失敗メッセージを返す。リトライは行わない。
func (h *SignalHandler) CreateSignal(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "フォームの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいフォーム形式でリクエストしてください。",
		})
		return
	}

	in := signal.CreateInput{
		CreatorID:        r.PostFormValue("creatorId"),
		Mood:             r.PostFormValue("mood"),
		Note:             r.PostFormValue("note"),
		Tags:             strings.TrimSpace(r.PostFormValue("tags")),
		FollowUpRequired: parseCheckbox(r.PostFormValue("followUpRequired")),
	}

	_, fieldErrs, err := h.service.Create(r.Context(), in)
	if err != nil {
		slog.Error("failed to create signal", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, signalFormResponse{
			Success: false,
			Message: model.NewDatabaseError().Message,
		})
		return
	}

	if fieldErrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, signalFormResponse{
			Success: false,
			Message: model.NewValidationFailedError().Message,
			Errors:  fieldErrs,
		})
		return
	}

	writeJSON(w, http.StatusCreated, signalFormResponse{Success: true})
}

// parseCheckbox はチェックボックス形式の入力を真偽値に変換する。
// "on"、"true"、"1"を真として扱う。
func parseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1":
		return true
	}
	return false
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
