package workspace

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	scores map[uuid.UUID]TestScore
	saved  map[uuid.UUID]SavedUniversity
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		scores: make(map[uuid.UUID]TestScore),
		saved:  make(map[uuid.UUID]SavedUniversity),
	}
}

func (r *fakeRepo) UpsertScore(_ context.Context, s TestScore) (TestScore, error) {
	// Replace on {owner, exam}, keeping the original id and timestamp.
	for id, existing := range r.scores {
		if existing.OwnerID == s.OwnerID && existing.Exam == s.Exam {
			s.ID = id
			s.CreatedAt = existing.CreatedAt
			r.scores[id] = s
			return s, nil
		}
	}
	r.scores[s.ID] = s
	return s, nil
}

func (r *fakeRepo) ListScores(_ context.Context, ownerID uuid.UUID) ([]TestScore, error) {
	var out []TestScore
	for _, s := range r.scores {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteScore(_ context.Context, ownerID, id uuid.UUID) error {
	s, ok := r.scores[id]
	if !ok || s.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.scores, id)
	return nil
}

func (r *fakeRepo) SaveUniversity(_ context.Context, s SavedUniversity) error {
	r.saved[s.UniversityID] = s
	return nil
}

func (r *fakeRepo) UnsaveUniversity(_ context.Context, _, universityID uuid.UUID) error {
	if _, ok := r.saved[universityID]; !ok {
		return ErrNotFound
	}
	delete(r.saved, universityID)
	return nil
}

func (r *fakeRepo) ListSaved(_ context.Context, ownerID uuid.UUID) ([]SavedUniversityView, error) {
	var out []SavedUniversityView
	for _, s := range r.saved {
		if s.OwnerID == ownerID {
			out = append(out, SavedUniversityView{SavedUniversity: s})
		}
	}
	return out, nil
}

func TestSubmitScore(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := uuid.New()
	ctx := context.Background()

	t.Run("normalizes exam name and fills defaults", func(t *testing.T) {
		got, err := svc.SubmitScore(ctx, TestScore{OwnerID: owner, Exam: " ielts ", Score: "7.5", MaxScore: "9"})
		require.NoError(t, err)
		assert.Equal(t, "IELTS", got.Exam)
		assert.NotEqual(t, uuid.Nil, got.ID)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("resubmission replaces the existing entry", func(t *testing.T) {
		first, err := svc.SubmitScore(ctx, TestScore{OwnerID: owner, Exam: "SAT", Score: "1400"})
		require.NoError(t, err)
		second, err := svc.SubmitScore(ctx, TestScore{OwnerID: owner, Exam: "sat", Score: "1480"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "1480", second.Score)

		scores, err := svc.ListScores(ctx, owner)
		require.NoError(t, err)
		count := 0
		for _, s := range scores {
			if s.Exam == "SAT" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("missing exam or score", func(t *testing.T) {
		_, err := svc.SubmitScore(ctx, TestScore{OwnerID: owner, Score: "1400"})
		assert.ErrorIs(t, err, ErrValidation)
		_, err = svc.SubmitScore(ctx, TestScore{OwnerID: owner, Exam: "SAT", Score: "  "})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDeleteScore(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := uuid.New()
	ctx := context.Background()

	score, err := svc.SubmitScore(ctx, TestScore{OwnerID: owner, Exam: "GRE", Score: "320"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteScore(ctx, uuid.New(), score.ID), ErrNotFound)
	assert.NoError(t, svc.DeleteScore(ctx, owner, score.ID))
	assert.ErrorIs(t, svc.DeleteScore(ctx, owner, score.ID), ErrNotFound)
}

func TestSavedUniversities(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := uuid.New()
	uniID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.SaveUniversity(ctx, owner, uniID, "  reach school  "))

	saved, err := svc.ListSaved(ctx, owner)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, uniID, saved[0].UniversityID)
	assert.Equal(t, "reach school", saved[0].Note, "note must be trimmed")
	assert.False(t, saved[0].SavedAt.IsZero())

	// Saving again just updates the note.
	require.NoError(t, svc.SaveUniversity(ctx, owner, uniID, "updated"))
	saved, err = svc.ListSaved(ctx, owner)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "updated", saved[0].Note)

	require.NoError(t, svc.UnsaveUniversity(ctx, owner, uniID))
	assert.ErrorIs(t, svc.UnsaveUniversity(ctx, owner, uniID), ErrNotFound)

	saved, err = svc.ListSaved(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, saved)
}
