package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by catalog repositories and use cases.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// University is a catalog entry. Ranking is a positive integer, lower is
// better. Tuition, Acceptance, Students and Deadline are display strings
// maintained by catalog administrators.
type University struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Ranking    int       `json:"ranking"`
	Rating     float64   `json:"rating"`
	Tuition    string    `json:"tuition"`
	Acceptance string    `json:"acceptance"`
	Students   string    `json:"students"`
	Image      string    `json:"image"`
	Programs   []string  `json:"programs"`
	Highlights []string  `json:"highlights"`
	Deadline   string    `json:"deadline"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Scholarship is a funding opportunity entry.
type Scholarship struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	Amount      string    `json:"amount"`
	Deadline    string    `json:"deadline"`
	Eligibility []string  `json:"eligibility"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VisaGuide describes the student-visa process for one country.
type VisaGuide struct {
	ID             uuid.UUID `json:"id"`
	Country        string    `json:"country"`
	VisaType       string    `json:"visaType"`
	ProcessingTime string    `json:"processingTime"`
	Fee            string    `json:"fee"`
	Requirements   []string  `json:"requirements"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Exam is a standardized test reference entry.
type Exam struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	FullName   string    `json:"fullName"`
	Fee        string    `json:"fee"`
	Duration   string    `json:"duration"`
	ScoreRange string    `json:"scoreRange"`
	Sections   []string  `json:"sections"`
	Website    string    `json:"website"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UniversityRepository is the persistence port for universities.
// The match scorer reads the full catalog through ListAll.
type UniversityRepository interface {
	Create(ctx context.Context, u University) error
	Update(ctx context.Context, u University) error
	GetByID(ctx context.Context, id uuid.UUID) (University, error)
	List(ctx context.Context, limit, offset int) ([]University, error)
	ListAll(ctx context.Context) ([]University, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScholarshipRepository is the persistence port for scholarships.
type ScholarshipRepository interface {
	Create(ctx context.Context, s Scholarship) error
	Update(ctx context.Context, s Scholarship) error
	GetByID(ctx context.Context, id uuid.UUID) (Scholarship, error)
	List(ctx context.Context, limit, offset int) ([]Scholarship, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VisaRepository is the persistence port for visa guides.
type VisaRepository interface {
	Create(ctx context.Context, v VisaGuide) error
	Update(ctx context.Context, v VisaGuide) error
	GetByID(ctx context.Context, id uuid.UUID) (VisaGuide, error)
	List(ctx context.Context, limit, offset int) ([]VisaGuide, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExamRepository is the persistence port for exam reference entries.
type ExamRepository interface {
	Create(ctx context.Context, e Exam) error
	Update(ctx context.Context, e Exam) error
	GetByID(ctx context.Context, id uuid.UUID) (Exam, error)
	List(ctx context.Context, limit, offset int) ([]Exam, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
