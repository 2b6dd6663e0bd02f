package match

import (
	"context"
	"strconv"
	"strings"
)

// Request carries the raw profile fields exactly as submitted. GPA may be
// "3.8" or "3.8/4.0" style; SAT and TOEFL are numeric strings. TOEFL is
// the historical wire name for the IELTS-band language score.
type Request struct {
	GPA       string               `json:"gpa"`
	SAT       string               `json:"sat"`
	TOEFL     string               `json:"toefl"`
	Major     string               `json:"major"`
	Documents *SupportingDocuments `json:"documents,omitempty"`
}

// UseCase computes ranked university suggestions for one request.
type UseCase interface {
	Suggest(ctx context.Context, req Request) ([]Suggestion, error)
}

type service struct {
	catalog CatalogReader
}

func NewService(catalog CatalogReader) UseCase {
	return &service{catalog: catalog}
}

// parseProfile validates and converts the raw request. All four fields
// must be present and parseable before any scoring work begins.
func parseProfile(req Request) (Profile, error) {
	gpaRaw := strings.TrimSpace(req.GPA)
	satRaw := strings.TrimSpace(req.SAT)
	toeflRaw := strings.TrimSpace(req.TOEFL)
	major := strings.TrimSpace(req.Major)
	if gpaRaw == "" || satRaw == "" || toeflRaw == "" || major == "" {
		return Profile{}, ErrValidation
	}

	// Tolerate "3.8/4.0"-style input: the part before the slash is the score.
	if i := strings.Index(gpaRaw, "/"); i >= 0 {
		gpaRaw = strings.TrimSpace(gpaRaw[:i])
	}
	gpa, err := strconv.ParseFloat(gpaRaw, 64)
	if err != nil {
		return Profile{}, ErrValidation
	}
	sat, err := strconv.Atoi(satRaw)
	if err != nil {
		return Profile{}, ErrValidation
	}
	language, err := strconv.ParseFloat(toeflRaw, 64)
	if err != nil {
		return Profile{}, ErrValidation
	}

	return Profile{
		GPA:           gpa,
		SATScore:      sat,
		LanguageScore: language,
		Major:         major,
	}, nil
}

func (s *service) Suggest(ctx context.Context, req Request) ([]Suggestion, error) {
	profile, err := parseProfile(req)
	if err != nil {
		return nil, err
	}
	universities, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, ErrCatalogUnavailable
	}
	return ScoreUniversities(profile, req.Documents, universities), nil
}
