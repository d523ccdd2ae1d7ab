// Package followup はフォローアップ記録のドメインロジックを提供する。
//
// 中心となるのは単一勝者保証である。同一シグナルに対して複数ユーザーが
// 同時にフォローアップを試みた場合、ちょうど1人だけが成功し、
// 残り全員は「既に記録済み」という競合結果を受け取る。
// この保証はストアのUNIQUE制約への条件付き挿入に委譲しており、
// アプリケーション側でのロックや存在確認は一切行わない。
package followup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hitoshi/signalboard/internal/metrics"
	"github.com/hitoshi/signalboard/internal/model"
	"github.com/hitoshi/signalboard/internal/repository"
)

// Service はフォローアップのサービス層。
type Service struct {
	repo      repository.FollowUpRepository
	collector metrics.MetricsCollector
	logger    *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.FollowUpRepository, collector metrics.MetricsCollector, logger *slog.Logger) *Service {
	return &Service{repo: repo, collector: collector, logger: logger}
}

// Mark はシグナルをフォローアップ済みとして記録する。
//
// 検証失敗時はINVALID_REQUESTのAPIErrorを返し、ストアには触れない。
// 挿入が競合（既に別ユーザーが記録済み）した場合はFOLLOW_UP_CONFLICTの
// APIErrorを返す。これは検証エラーともストア障害とも区別可能な結果であり、
// システム障害としては扱わない。リトライは行わない。
func (s *Service) Mark(ctx context.Context, signalID, userID string) (*model.FollowUp, error) {
	if _, err := uuid.Parse(signalID); err != nil {
		return nil, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "signalIdはUUID形式で指定してください。",
			Category: "validation",
			Action:   "シグナルIDを確認してください。",
		}
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "userIdはUUID形式で指定してください。",
			Category: "validation",
			Action:   "ユーザーIDを確認してください。",
		}
	}

	followUp, err := s.repo.Insert(ctx, signalID, userID)
	if err != nil {
		return nil, fmt.Errorf("フォローアップの記録に失敗しました: %w", err)
	}

	// 挿入0行 = 別の呼び出しが先に勝者となった
	if followUp == nil {
		s.collector.RecordFollowUpConflict()
		return nil, model.NewFollowUpConflictError()
	}

	s.collector.RecordFollowUpWin()

	return followUp, nil
}

// List はフォローアップ一覧を返す。
// signalIDが空の場合は全件をフォローアップ日時の降順で返す。
// signalIDが指定された場合はそのシグナルのフォローアップに絞り込む。
// 絞り込み結果が2件以上の場合はUNIQUE制約が上流で破られた異常を意味するが、
// 読み取りは失敗させず、ログとメトリクスで運用者に通知するに留める。
func (s *Service) List(ctx context.Context, signalID string) ([]*model.FollowUp, error) {
	if signalID == "" {
		followUps, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("フォローアップ一覧の取得に失敗しました: %w", err)
		}
		return followUps, nil
	}

	followUps, err := s.repo.ListBySignalID(ctx, signalID)
	if err != nil {
		return nil, fmt.Errorf("フォローアップの取得に失敗しました: %w", err)
	}

	if len(followUps) > 1 {
		s.logger.Warn("multiple follow-ups found for single signal",
			slog.String("signal_id", signalID),
			slog.Int("count", len(followUps)),
		)
		s.collector.RecordUniquenessAnomaly(signalID)
	}

	return followUps, nil
}
