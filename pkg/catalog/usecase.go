package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// UseCase exposes catalog reads to everyone and writes to administrators.
// Admin gating itself happens at the HTTP layer; the use case only
// validates the data.
type UseCase interface {
	CreateUniversity(ctx context.Context, u University) (University, error)
	UpdateUniversity(ctx context.Context, u University) (University, error)
	GetUniversity(ctx context.Context, id uuid.UUID) (University, error)
	ListUniversities(ctx context.Context, limit, offset int) ([]University, error)
	DeleteUniversity(ctx context.Context, id uuid.UUID) error

	CreateScholarship(ctx context.Context, s Scholarship) (Scholarship, error)
	UpdateScholarship(ctx context.Context, s Scholarship) (Scholarship, error)
	GetScholarship(ctx context.Context, id uuid.UUID) (Scholarship, error)
	ListScholarships(ctx context.Context, limit, offset int) ([]Scholarship, error)
	DeleteScholarship(ctx context.Context, id uuid.UUID) error

	CreateVisaGuide(ctx context.Context, v VisaGuide) (VisaGuide, error)
	UpdateVisaGuide(ctx context.Context, v VisaGuide) (VisaGuide, error)
	GetVisaGuide(ctx context.Context, id uuid.UUID) (VisaGuide, error)
	ListVisaGuides(ctx context.Context, limit, offset int) ([]VisaGuide, error)
	DeleteVisaGuide(ctx context.Context, id uuid.UUID) error

	CreateExam(ctx context.Context, e Exam) (Exam, error)
	UpdateExam(ctx context.Context, e Exam) (Exam, error)
	GetExam(ctx context.Context, id uuid.UUID) (Exam, error)
	ListExams(ctx context.Context, limit, offset int) ([]Exam, error)
	DeleteExam(ctx context.Context, id uuid.UUID) error
}

type service struct {
	universities UniversityRepository
	scholarships ScholarshipRepository
	visas        VisaRepository
	exams        ExamRepository
}

func NewService(universities UniversityRepository, scholarships ScholarshipRepository, visas VisaRepository, exams ExamRepository) UseCase {
	return &service{
		universities: universities,
		scholarships: scholarships,
		visas:        visas,
		exams:        exams,
	}
}

func validateUniversity(u University) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if u.Ranking <= 0 {
		return fmt.Errorf("%w: ranking must be a positive integer", ErrValidation)
	}
	if u.Rating < 0 || u.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	if u.Acceptance != "" {
		rate, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(u.Acceptance), "%"), 64)
		if err != nil || rate < 0 || rate > 100 {
			return fmt.Errorf("%w: acceptance must parse to a percentage between 0 and 100", ErrValidation)
		}
	}
	return nil
}

func (s *service) CreateUniversity(ctx context.Context, u University) (University, error) {
	u.Name = strings.TrimSpace(u.Name)
	if err := validateUniversity(u); err != nil {
		return University{}, err
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if err := s.universities.Create(ctx, u); err != nil {
		return University{}, err
	}
	return u, nil
}

func (s *service) UpdateUniversity(ctx context.Context, u University) (University, error) {
	u.Name = strings.TrimSpace(u.Name)
	if err := validateUniversity(u); err != nil {
		return University{}, err
	}
	if err := s.universities.Update(ctx, u); err != nil {
		return University{}, err
	}
	return s.universities.GetByID(ctx, u.ID)
}

func (s *service) GetUniversity(ctx context.Context, id uuid.UUID) (University, error) {
	return s.universities.GetByID(ctx, id)
}

func (s *service) ListUniversities(ctx context.Context, limit, offset int) ([]University, error) {
	return s.universities.List(ctx, limit, offset)
}

func (s *service) DeleteUniversity(ctx context.Context, id uuid.UUID) error {
	return s.universities.Delete(ctx, id)
}

func (s *service) CreateScholarship(ctx context.Context, sc Scholarship) (Scholarship, error) {
	sc.Name = strings.TrimSpace(sc.Name)
	if sc.Name == "" {
		return Scholarship{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	if err := s.scholarships.Create(ctx, sc); err != nil {
		return Scholarship{}, err
	}
	return sc, nil
}

func (s *service) UpdateScholarship(ctx context.Context, sc Scholarship) (Scholarship, error) {
	sc.Name = strings.TrimSpace(sc.Name)
	if sc.Name == "" {
		return Scholarship{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.scholarships.Update(ctx, sc); err != nil {
		return Scholarship{}, err
	}
	return s.scholarships.GetByID(ctx, sc.ID)
}

func (s *service) GetScholarship(ctx context.Context, id uuid.UUID) (Scholarship, error) {
	return s.scholarships.GetByID(ctx, id)
}

func (s *service) ListScholarships(ctx context.Context, limit, offset int) ([]Scholarship, error) {
	return s.scholarships.List(ctx, limit, offset)
}

func (s *service) DeleteScholarship(ctx context.Context, id uuid.UUID) error {
	return s.scholarships.Delete(ctx, id)
}

func (s *service) CreateVisaGuide(ctx context.Context, v VisaGuide) (VisaGuide, error) {
	v.Country = strings.TrimSpace(v.Country)
	if v.Country == "" {
		return VisaGuide{}, fmt.Errorf("%w: country is required", ErrValidation)
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if err := s.visas.Create(ctx, v); err != nil {
		return VisaGuide{}, err
	}
	return v, nil
}

func (s *service) UpdateVisaGuide(ctx context.Context, v VisaGuide) (VisaGuide, error) {
	v.Country = strings.TrimSpace(v.Country)
	if v.Country == "" {
		return VisaGuide{}, fmt.Errorf("%w: country is required", ErrValidation)
	}
	if err := s.visas.Update(ctx, v); err != nil {
		return VisaGuide{}, err
	}
	return s.visas.GetByID(ctx, v.ID)
}

func (s *service) GetVisaGuide(ctx context.Context, id uuid.UUID) (VisaGuide, error) {
	return s.visas.GetByID(ctx, id)
}

func (s *service) ListVisaGuides(ctx context.Context, limit, offset int) ([]VisaGuide, error) {
	return s.visas.List(ctx, limit, offset)
}

func (s *service) DeleteVisaGuide(ctx context.Context, id uuid.UUID) error {
	return s.visas.Delete(ctx, id)
}

func (s *service) CreateExam(ctx context.Context, e Exam) (Exam, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return Exam{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if err := s.exams.Create(ctx, e); err != nil {
		return Exam{}, err
	}
	return e, nil
}

func (s *service) UpdateExam(ctx context.Context, e Exam) (Exam, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return Exam{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.exams.Update(ctx, e); err != nil {
		return Exam{}, err
	}
	return s.exams.GetByID(ctx, e.ID)
}

func (s *service) GetExam(ctx context.Context, id uuid.UUID) (Exam, error) {
	return s.exams.GetByID(ctx, id)
}

func (s *service) ListExams(ctx context.Context, limit, offset int) ([]Exam, error) {
	return s.exams.List(ctx, limit, offset)
}

func (s *service) DeleteExam(ctx context.Context, id uuid.UUID) error {
	return s.exams.Delete(ctx, id)
}
