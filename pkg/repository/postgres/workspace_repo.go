package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unipath/backend/pkg/workspace"
)

// WorkspaceRepository stores per-user test scores and the
// saved-university shortlist.
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

func NewWorkspaceRepository(pool *pgxpool.Pool) (*WorkspaceRepository, error) {
	r := &WorkspaceRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *WorkspaceRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS test_scores (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	exam TEXT NOT NULL,
	score TEXT NOT NULL,
	max_score TEXT NOT NULL DEFAULT '',
	test_date TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (owner_id, exam)
);
CREATE TABLE IF NOT EXISTS saved_universities (
	owner_id UUID NOT NULL,
	university_id UUID NOT NULL REFERENCES universities(id) ON DELETE CASCADE,
	note TEXT NOT NULL DEFAULT '',
	saved_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (owner_id, university_id)
);
`)
	return err
}

func (r *WorkspaceRepository) UpsertScore(ctx context.Context, s workspace.TestScore) (workspace.TestScore, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO test_scores (id, owner_id, exam, score, max_score, test_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (owner_id, exam) DO UPDATE
SET score = EXCLUDED.score, max_score = EXCLUDED.max_score, test_date = EXCLUDED.test_date
RETURNING id, created_at
`, s.ID, s.OwnerID, s.Exam, s.Score, s.MaxScore, s.TestDate, s.CreatedAt)
	var created time.Time
	if err := row.Scan(&s.ID, &created); err != nil {
		return workspace.TestScore{}, err
	}
	s.CreatedAt = created.UTC()
	return s, nil
}

func (r *WorkspaceRepository) ListScores(ctx context.Context, ownerID uuid.UUID) ([]workspace.TestScore, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, exam, score, max_score, test_date, created_at
FROM test_scores WHERE owner_id = $1 ORDER BY exam ASC
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []workspace.TestScore
	for rows.Next() {
		var s workspace.TestScore
		var created time.Time
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Exam, &s.Score, &s.MaxScore, &s.TestDate, &created); err != nil {
			return nil, err
		}
		s.CreatedAt = created.UTC()
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *WorkspaceRepository) DeleteScore(ctx context.Context, ownerID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM test_scores WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return workspace.ErrNotFound
	}
	return nil
}

func (r *WorkspaceRepository) SaveUniversity(ctx context.Context, s workspace.SavedUniversity) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO saved_universities (owner_id, university_id, note, saved_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (owner_id, university_id) DO UPDATE SET note = EXCLUDED.note
`, s.OwnerID, s.UniversityID, s.Note, s.SavedAt)
	return err
}

func (r *WorkspaceRepository) UnsaveUniversity(ctx context.Context, ownerID, universityID uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM saved_universities WHERE owner_id = $1 AND university_id = $2
`, ownerID, universityID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return workspace.ErrNotFound
	}
	return nil
}

func (r *WorkspaceRepository) ListSaved(ctx context.Context, ownerID uuid.UUID) ([]workspace.SavedUniversityView, error) {
	rows, err := r.pool.Query(ctx, `
SELECT s.owner_id, s.university_id, s.note, s.saved_at, u.name, u.location, u.ranking, u.image
FROM saved_universities s
JOIN universities u ON u.id = s.university_id
WHERE s.owner_id = $1
ORDER BY s.saved_at DESC
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []workspace.SavedUniversityView
	for rows.Next() {
		var v workspace.SavedUniversityView
		var saved time.Time
		if err := rows.Scan(&v.OwnerID, &v.UniversityID, &v.Note, &saved, &v.Name, &v.Location, &v.Ranking, &v.Image); err != nil {
			return nil, err
		}
		v.SavedAt = saved.UTC()
		res = append(res, v)
	}
	return res, rows.Err()
}
