package workspace

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// TestScore is one standardized-test result in a user's workspace.
// There is at most one score per {owner, exam}; re-submitting replaces it.
type TestScore struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Exam      string    `json:"exam"`
	Score     string    `json:"score"`
	MaxScore  string    `json:"maxScore"`
	TestDate  string    `json:"testDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// SavedUniversity marks a catalog university as shortlisted by a user.
type SavedUniversity struct {
	OwnerID      uuid.UUID `json:"ownerId"`
	UniversityID uuid.UUID `json:"universityId"`
	Note         string    `json:"note,omitempty"`
	SavedAt      time.Time `json:"savedAt"`
}

// SavedUniversityView joins the shortlist entry with catalog display
// fields for rendering.
type SavedUniversityView struct {
	SavedUniversity
	Name     string `json:"name"`
	Location string `json:"location"`
	Ranking  int    `json:"ranking"`
	Image    string `json:"image"`
}

// Repository is the persistence port for the per-user workspace.
type Repository interface {
	UpsertScore(ctx context.Context, s TestScore) (TestScore, error)
	ListScores(ctx context.Context, ownerID uuid.UUID) ([]TestScore, error)
	DeleteScore(ctx context.Context, ownerID, id uuid.UUID) error

	SaveUniversity(ctx context.Context, s SavedUniversity) error
	UnsaveUniversity(ctx context.Context, ownerID, universityID uuid.UUID) error
	ListSaved(ctx context.Context, ownerID uuid.UUID) ([]SavedUniversityView, error)
}
