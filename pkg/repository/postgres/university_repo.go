package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unipath/backend/pkg/catalog"
)

// UniversityRepository stores catalog universities. Programs and
// highlights live in JSONB columns.
type UniversityRepository struct {
	pool *pgxpool.Pool
}

func NewUniversityRepository(pool *pgxpool.Pool) (*UniversityRepository, error) {
	r := &UniversityRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *UniversityRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS universities (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	location TEXT NOT NULL DEFAULT '',
	ranking INT NOT NULL CHECK (ranking > 0),
	rating REAL NOT NULL DEFAULT 0,
	tuition TEXT NOT NULL DEFAULT '',
	acceptance TEXT NOT NULL DEFAULT '',
	students TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	programs JSONB NOT NULL DEFAULT '[]',
	highlights JSONB NOT NULL DEFAULT '[]',
	deadline TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_universities_ranking ON universities(ranking);
`)
	return err
}

func (r *UniversityRepository) Create(ctx context.Context, u catalog.University) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	programs, err := json.Marshal(u.Programs)
	if err != nil {
		return err
	}
	highlights, err := json.Marshal(u.Highlights)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO universities (id, name, location, ranking, rating, tuition, acceptance, students, image, programs, highlights, deadline, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`, u.ID, u.Name, u.Location, u.Ranking, u.Rating, u.Tuition, u.Acceptance, u.Students, u.Image, programs, highlights, u.Deadline, u.CreatedAt)
	return err
}

func (r *UniversityRepository) Update(ctx context.Context, u catalog.University) error {
	programs, err := json.Marshal(u.Programs)
	if err != nil {
		return err
	}
	highlights, err := json.Marshal(u.Highlights)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE universities
SET name = $2, location = $3, ranking = $4, rating = $5, tuition = $6,
	acceptance = $7, students = $8, image = $9, programs = $10,
	highlights = $11, deadline = $12
WHERE id = $1
`, u.ID, u.Name, u.Location, u.Ranking, u.Rating, u.Tuition, u.Acceptance, u.Students, u.Image, programs, highlights, u.Deadline)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

const universityColumns = `id, name, location, ranking, rating, tuition, acceptance, students, image, programs, highlights, deadline, created_at`

func scanUniversity(row pgx.Row) (catalog.University, error) {
	var u catalog.University
	var programs, highlights []byte
	var created time.Time
	if err := row.Scan(&u.ID, &u.Name, &u.Location, &u.Ranking, &u.Rating, &u.Tuition, &u.Acceptance, &u.Students, &u.Image, &programs, &highlights, &u.Deadline, &created); err != nil {
		return catalog.University{}, err
	}
	_ = json.Unmarshal(programs, &u.Programs)
	_ = json.Unmarshal(highlights, &u.Highlights)
	u.CreatedAt = created.UTC()
	return u, nil
}

func (r *UniversityRepository) GetByID(ctx context.Context, id uuid.UUID) (catalog.University, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities WHERE id = $1`, id)
	u, err := scanUniversity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.University{}, catalog.ErrNotFound
	}
	return u, err
}

func (r *UniversityRepository) List(ctx context.Context, limit, offset int) ([]catalog.University, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+universityColumns+` FROM universities ORDER BY ranking ASC LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []catalog.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

// ListAll returns the whole catalog in one snapshot for the match scorer.
func (r *UniversityRepository) ListAll(ctx context.Context) ([]catalog.University, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+universityColumns+` FROM universities ORDER BY ranking ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []catalog.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *UniversityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM universities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
