package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/signalboard/internal/model"
)

// FollowUpServiceInterface はフォローアップハンドラーが必要とするサービスインターフェース。
type FollowUpServiceInterface interface {
	// Mark はシグナルをフォローアップ済みとして記録する。
	Mark(ctx context.Context, signalID, userID string) (*model.FollowUp, error)
	// List はフォローアップ一覧を返す。signalIDが空の場合は全件。
	List(ctx context.Context, signalID string) ([]*model.FollowUp, error)
}

// FollowUpHandler はフォローアップのHTTPハンドラー。
type FollowUpHandler struct {
	service FollowUpServiceInterface
}

// NewFollowUpHandler はFollowUpHandlerを生成する。
func NewFollowUpHandler(service FollowUpServiceInterface) *FollowUpHandler {
	return &FollowUpHandler{service: service}
}

// --- レスポンス型 ---

// followUpResponse はフォローアップ射影のレスポンス。
type followUpResponse struct {
	ID           string `json:"id"`
	SignalID     string `json:"signalId"`
	UserID       string `json:"userId"`
	FollowedUpAt string `json:"followedUpAt"`
}

// followUpActionResponse はフォローアップ記録の結果レスポンス。
// 競合・検証エラー・ストア障害はcodeで呼び出し元から区別できる。
type followUpActionResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListFollowUps はフォローアップ一覧を取得する。
// GET /api/follow_ups?signalId=xxx
//
// signalIdを指定するとそのシグナルのフォローアップに絞り込む。
// 常に最新のコミット済み状態を返し、キャッシュは無効化する。
func (h *FollowUpHandler) ListFollowUps(w http.ResponseWriter, r *http.Request) {
	signalID := r.URL.Query().Get("signalId")

	followUps, err := h.service.List(r.Context(), signalID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]followUpResponse, len(followUps))
	for i, fu := range followUps {
		results[i] = followUpResponse{
			ID:           fu.ID,
			SignalID:     fu.SignalID,
			UserID:       fu.UserID,
			FollowedUpAt: fu.FollowedUpAt.UTC().Format(time.RFC3339),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(results)
}

// MarkFollowedUp はフォーム送信からシグナルをフォローアップ済みとして記録する。
// POST /api/follow_ups（application/x-www-form-urlencoded）
//
// 3つの結果を区別して返す:
//   - 200 成功（この呼び出しが単一勝者となった）
//   - 409 FOLLOW_UP_CONFLICT（別ユーザーが既に記録済み）
//   - 500 DATABASE_ERROR（競合以外のストア障害）
func (h *FollowUpHandler) MarkFollowedUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, followUpActionResponse{
			Success: false,
			Code:    model.ErrCodeInvalidRequest,
			Error:   "フォームの解析に失敗しました。",
		})
		return
	}

	signalID := r.PostFormValue("signalId")
	userID := r.PostFormValue("userId")

	_, err := h.service.Mark(r.Context(), signalID, userID)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			writeJSON(w, mapAPIErrorToHTTPStatus(apiErr), followUpActionResponse{
				Success: false,
				Code:    apiErr.Code,
				Error:   apiErr.Message,
			})
			return
		}

		slog.Error("failed to mark follow-up", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, followUpActionResponse{
			Success: false,
			Code:    model.ErrCodeDatabaseError,
			Error:   model.NewDatabaseError().Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, followUpActionResponse{Success: true})
}
