// Package signal はシグナル投稿・一覧取得のドメインロジックを提供する。
package signal

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hitoshi/signalboard/internal/metrics"
	"github.com/hitoshi/signalboard/internal/model"
	"github.com/hitoshi/signalboard/internal/repository"
)

// CreateInput はシグナル作成の入力を表す。
// Tagsはフォームのカンマ区切り文字列をトリムしたもので、空文字列は「未指定」を意味する。
type CreateInput struct {
	CreatorID        string
	Mood             string
	Note             string
	Tags             string
	FollowUpRequired bool
}

// FieldErrors はフィールドごとの検証エラーメッセージのリスト。
// キーはフォームのフィールド名（creatorId, mood, note, tags）。
type FieldErrors map[string][]string

// SignalInfo はシグナルの読み取り射影を表す。
// タグはDB格納形式から分割・トリム・空要素除去済みのリストで、
// タグが無い場合はnil（射影から完全に省略される）。
type SignalInfo struct {
	ID               string
	CreatorID        string
	Mood             model.Mood
	Note             string
	Tags             []string
	FollowUpRequired bool
	CreatedAt        time.Time
}

// Service はシグナルのサービス層。
// 作成時の検証と、一覧の読み取り射影を提供する。
type Service struct {
	repo      repository.SignalRepository
	collector metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.SignalRepository, collector metrics.MetricsCollector) *Service {
	return &Service{repo: repo, collector: collector}
}

// Validate はシグナル作成入力を検証し、フィールドごとのエラーを返す。
// エラーが無い場合はnilを返す。ストアには一切アクセスしない。
func Validate(in CreateInput) FieldErrors {
	errs := FieldErrors{}

	if _, err := uuid.Parse(in.CreatorID); err != nil {
		errs["creatorId"] = append(errs["creatorId"], "creatorIdはUUID形式で指定してください。")
	}

	if !model.Mood(in.Mood).Valid() {
		errs["mood"] = append(errs["mood"], "moodはgreen、yellow、redのいずれかを指定してください。")
	}

	noteLen := utf8.RuneCountInString(in.Note)
	if noteLen < 1 {
		errs["note"] = append(errs["note"], "noteは必須です。")
	} else if noteLen > model.NoteMaxLength {
		errs["note"] = append(errs["note"], fmt.Sprintf("noteは%d文字以内で入力してください。", model.NoteMaxLength))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Create はシグナルを検証して作成する。
// 検証に失敗した場合はFieldErrorsを返し、ストアには触れない。
// 成功した場合は作成されたシグナル（DB採番のIDと作成日時付き）を返す。
// 失敗時のリトライは行わず、そのまま呼び出し元に返す。
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Signal, FieldErrors, error) {
	if errs := Validate(in); errs != nil {
		s.collector.RecordValidationFailure()
		return nil, errs, nil
	}

	created, err := s.repo.Create(ctx, &model.Signal{
		CreatorID:        in.CreatorID,
		Mood:             model.Mood(in.Mood),
		Note:             in.Note,
		Tags:             in.Tags,
		FollowUpRequired: in.FollowUpRequired,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("シグナルの作成に失敗しました: %w", err)
	}

	s.collector.RecordSignalCreated(string(created.Mood))

	return created, nil, nil
}

// List は全シグナルを作成日時の降順で読み取り射影として返す。
func (s *Service) List(ctx context.Context) ([]SignalInfo, error) {
	signals, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("シグナル一覧の取得に失敗しました: %w", err)
	}

	results := make([]SignalInfo, len(signals))
	for i, sig := range signals {
		results[i] = SignalInfo{
			ID:               sig.ID,
			CreatorID:        sig.CreatorID,
			Mood:             sig.Mood,
			Note:             sig.Note,
			Tags:             SplitTags(sig.Tags),
			FollowUpRequired: sig.FollowUpRequired,
			CreatedAt:        sig.CreatedAt,
		}
	}

	return results, nil
}
