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

// ScholarshipRepository stores scholarship catalog entries.
type ScholarshipRepository struct {
	pool *pgxpool.Pool
}

func NewScholarshipRepository(pool *pgxpool.Pool) (*ScholarshipRepository, error) {
	r := &ScholarshipRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ScholarshipRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS scholarships (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	country TEXT NOT NULL DEFAULT '',
	amount TEXT NOT NULL DEFAULT '',
	deadline TEXT NOT NULL DEFAULT '',
	eligibility JSONB NOT NULL DEFAULT '[]',
	link TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ScholarshipRepository) Create(ctx context.Context, s catalog.Scholarship) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	eligibility, err := json.Marshal(s.Eligibility)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO scholarships (id, name, country, amount, deadline, eligibility, link, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, s.ID, s.Name, s.Country, s.Amount, s.Deadline, eligibility, s.Link, s.CreatedAt)
	return err
}

func (r *ScholarshipRepository) Update(ctx context.Context, s catalog.Scholarship) error {
	eligibility, err := json.Marshal(s.Eligibility)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE scholarships
SET name = $2, country = $3, amount = $4, deadline = $5, eligibility = $6, link = $7
WHERE id = $1
`, s.ID, s.Name, s.Country, s.Amount, s.Deadline, eligibility, s.Link)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ScholarshipRepository) GetByID(ctx context.Context, id uuid.UUID) (catalog.Scholarship, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, country, amount, deadline, eligibility, link, created_at
FROM scholarships WHERE id = $1
`, id)
	var s catalog.Scholarship
	var eligibility []byte
	var created time.Time
	if err := row.Scan(&s.ID, &s.Name, &s.Country, &s.Amount, &s.Deadline, &eligibility, &s.Link, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Scholarship{}, catalog.ErrNotFound
		}
		return catalog.Scholarship{}, err
	}
	_ = json.Unmarshal(eligibility, &s.Eligibility)
	s.CreatedAt = created.UTC()
	return s, nil
}

func (r *ScholarshipRepository) List(ctx context.Context, limit, offset int) ([]catalog.Scholarship, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, name, country, amount, deadline, eligibility, link, created_at
FROM scholarships ORDER BY name ASC LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []catalog.Scholarship
	for rows.Next() {
		var s catalog.Scholarship
		var eligibility []byte
		var created time.Time
		if err := rows.Scan(&s.ID, &s.Name, &s.Country, &s.Amount, &s.Deadline, &eligibility, &s.Link, &created); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(eligibility, &s.Eligibility)
		s.CreatedAt = created.UTC()
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *ScholarshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM scholarships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// VisaRepository stores visa guide entries.
type VisaRepository struct {
	pool *pgxpool.Pool
}

func NewVisaRepository(pool *pgxpool.Pool) (*VisaRepository, error) {
	r := &VisaRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *VisaRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS visa_guides (
	id UUID PRIMARY KEY,
	country TEXT NOT NULL,
	visa_type TEXT NOT NULL DEFAULT '',
	processing_time TEXT NOT NULL DEFAULT '',
	fee TEXT NOT NULL DEFAULT '',
	requirements JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *VisaRepository) Create(ctx context.Context, v catalog.VisaGuide) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	requirements, err := json.Marshal(v.Requirements)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO visa_guides (id, country, visa_type, processing_time, fee, requirements, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, v.ID, v.Country, v.VisaType, v.ProcessingTime, v.Fee, requirements, v.CreatedAt)
	return err
}

func (r *VisaRepository) Update(ctx context.Context, v catalog.VisaGuide) error {
	requirements, err := json.Marshal(v.Requirements)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE visa_guides
SET country = $2, visa_type = $3, processing_time = $4, fee = $5, requirements = $6
WHERE id = $1
`, v.ID, v.Country, v.VisaType, v.ProcessingTime, v.Fee, requirements)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *VisaRepository) GetByID(ctx context.Context, id uuid.UUID) (catalog.VisaGuide, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, country, visa_type, processing_time, fee, requirements, created_at
FROM visa_guides WHERE id = $1
`, id)
	var v catalog.VisaGuide
	var requirements []byte
	var created time.Time
	if err := row.Scan(&v.ID, &v.Country, &v.VisaType, &v.ProcessingTime, &v.Fee, &requirements, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.VisaGuide{}, catalog.ErrNotFound
		}
		return catalog.VisaGuide{}, err
	}
	_ = json.Unmarshal(requirements, &v.Requirements)
	v.CreatedAt = created.UTC()
	return v, nil
}

func (r *VisaRepository) List(ctx context.Context, limit, offset int) ([]catalog.VisaGuide, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, country, visa_type, processing_time, fee, requirements, created_at
FROM visa_guides ORDER BY country ASC LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []catalog.VisaGuide
	for rows.Next() {
		var v catalog.VisaGuide
		var requirements []byte
		var created time.Time
		if err := rows.Scan(&v.ID, &v.Country, &v.VisaType, &v.ProcessingTime, &v.Fee, &requirements, &created); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(requirements, &v.Requirements)
		v.CreatedAt = created.UTC()
		res = append(res, v)
	}
	return res, rows.Err()
}

func (r *VisaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM visa_guides WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// ExamRepository stores exam reference entries.
type ExamRepository struct {
	pool *pgxpool.Pool
}

func NewExamRepository(pool *pgxpool.Pool) (*ExamRepository, error) {
	r := &ExamRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ExamRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS exams (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	full_name TEXT NOT NULL DEFAULT '',
	fee TEXT NOT NULL DEFAULT '',
	duration TEXT NOT NULL DEFAULT '',
	score_range TEXT NOT NULL DEFAULT '',
	sections JSONB NOT NULL DEFAULT '[]',
	website TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ExamRepository) Create(ctx context.Context, e catalog.Exam) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	sections, err := json.Marshal(e.Sections)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO exams (id, name, full_name, fee, duration, score_range, sections, website, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, e.ID, e.Name, e.FullName, e.Fee, e.Duration, e.ScoreRange, sections, e.Website, e.CreatedAt)
	return err
}

func (r *ExamRepository) Update(ctx context.Context, e catalog.Exam) error {
	sections, err := json.Marshal(e.Sections)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE exams
SET name = $2, full_name = $3, fee = $4, duration = $5, score_range = $6, sections = $7, website = $8
WHERE id = $1
`, e.ID, e.Name, e.FullName, e.Fee, e.Duration, e.ScoreRange, sections, e.Website)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (catalog.Exam, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, full_name, fee, duration, score_range, sections, website, created_at
FROM exams WHERE id = $1
`, id)
	var e catalog.Exam
	var sections []byte
	var created time.Time
	if err := row.Scan(&e.ID, &e.Name, &e.FullName, &e.Fee, &e.Duration, &e.ScoreRange, &sections, &e.Website, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Exam{}, catalog.ErrNotFound
		}
		return catalog.Exam{}, err
	}
	_ = json.Unmarshal(sections, &e.Sections)
	e.CreatedAt = created.UTC()
	return e, nil
}

func (r *ExamRepository) List(ctx context.Context, limit, offset int) ([]catalog.Exam, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, name, full_name, fee, duration, score_range, sections, website, created_at
FROM exams ORDER BY name ASC LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []catalog.Exam
	for rows.Next() {
		var e catalog.Exam
		var sections []byte
		var created time.Time
		if err := rows.Scan(&e.ID, &e.Name, &e.FullName, &e.Fee, &e.Duration, &e.ScoreRange, &sections, &e.Website, &created); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(sections, &e.Sections)
		e.CreatedAt = created.UTC()
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
