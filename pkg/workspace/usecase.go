package workspace

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase covers the per-user planning workspace: test scores and the
// saved-university shortlist.
type UseCase interface {
	SubmitScore(ctx context.Context, s TestScore) (TestScore, error)
	ListScores(ctx context.Context, ownerID uuid.UUID) ([]TestScore, error)
	DeleteScore(ctx context.Context, ownerID, id uuid.UUID) error

	SaveUniversity(ctx context.Context, ownerID, universityID uuid.UUID, note string) error
	UnsaveUniversity(ctx context.Context, ownerID, universityID uuid.UUID) error
	ListSaved(ctx context.Context, ownerID uuid.UUID) ([]SavedUniversityView, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) SubmitScore(ctx context.Context, score TestScore) (TestScore, error) {
	score.Exam = strings.ToUpper(strings.TrimSpace(score.Exam))
	score.Score = strings.TrimSpace(score.Score)
	if score.Exam == "" || score.Score == "" {
		return TestScore{}, fmt.Errorf("%w: exam and score are required", ErrValidation)
	}
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now().UTC()
	}
	return s.repo.UpsertScore(ctx, score)
}

func (s *service) ListScores(ctx context.Context, ownerID uuid.UUID) ([]TestScore, error) {
	return s.repo.ListScores(ctx, ownerID)
}

func (s *service) DeleteScore(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteScore(ctx, ownerID, id)
}

func (s *service) SaveUniversity(ctx context.Context, ownerID, universityID uuid.UUID, note string) error {
	return s.repo.SaveUniversity(ctx, SavedUniversity{
		OwnerID:      ownerID,
		UniversityID: universityID,
		Note:         strings.TrimSpace(note),
		SavedAt:      time.Now().UTC(),
	})
}

func (s *service) UnsaveUniversity(ctx context.Context, ownerID, universityID uuid.UUID) error {
	return s.repo.UnsaveUniversity(ctx, ownerID, universityID)
}

func (s *service) ListSaved(ctx context.Context, ownerID uuid.UUID) ([]SavedUniversityView, error) {
	return s.repo.ListSaved(ctx, ownerID)
}
