package match

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/unipath/backend/pkg/catalog"
)

// Errors surfaced by the suggestion use case.
var (
	// ErrValidation means a required profile field is missing or malformed.
	ErrValidation = errors.New("GPA, SAT, IELTS, and major are required")
	// ErrCatalogUnavailable means the university catalog could not be read.
	// Scoring is all-or-nothing; no partial results are ever returned.
	ErrCatalogUnavailable = errors.New("university catalog unavailable")
)

// Profile holds the applicant's academic numbers for one scoring request.
// It is built from the request body and never persisted.
//
// LanguageScore is the wire-level "toefl" field but is scored on IELTS
// 0-9 bands; the mismatch is inherited from the original contract and
// kept on purpose.
type Profile struct {
	GPA           float64
	SATScore      int
	LanguageScore float64
	Major         string
}

// Recommendation is one recommendation letter record supplied with the
// scoring request.
type Recommendation struct {
	Completed     bool   `json:"completed"`
	Submitted     bool   `json:"submitted"`
	LetterContent string `json:"letterContent"`
}

// ExtraDocument is a generic supporting document reference.
type ExtraDocument struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
	Complete bool   `json:"complete"`
}

// Essay is the application essay text supplied with the scoring request.
type Essay struct {
	Content string `json:"content"`
}

// SupportingDocuments bundles the optional application material that
// feeds the document score.
type SupportingDocuments struct {
	Essays          *Essay           `json:"essays,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Documents       []ExtraDocument  `json:"documents,omitempty"`
}

// ScoreDetail is the per-criterion breakdown shown to the user: the raw
// value they supplied, the threshold band it landed in, the status label
// and the points awarded.
type ScoreDetail struct {
	Value  string `json:"value"`
	Band   string `json:"band"`
	Status string `json:"status"`
	Points int    `json:"points"`
}

// ScoreBreakdown groups the four sub-criterion details.
type ScoreBreakdown struct {
	GPA   ScoreDetail `json:"gpa"`
	SAT   ScoreDetail `json:"sat"`
	IELTS ScoreDetail `json:"ielts"`
	Major ScoreDetail `json:"major"`
}

// Suggestion is one scored university, ready for rendering. MatchScore is
// clamped to [0,100] and AcceptanceProbability to [5,95].
type Suggestion struct {
	ID                    uuid.UUID      `json:"id"`
	Name                  string         `json:"name"`
	Location              string         `json:"location"`
	Ranking               int            `json:"ranking"`
	Rating                float64        `json:"rating"`
	Tuition               string         `json:"tuition"`
	Acceptance            string         `json:"acceptance"`
	Students              string         `json:"students"`
	Image                 string         `json:"image"`
	Programs              []string       `json:"programs"`
	Highlights            []string       `json:"highlights"`
	MatchScore            int            `json:"matchScore"`
	AcceptanceProbability int            `json:"acceptanceProbability"`
	Reason                string         `json:"reason"`
	Deadline              string         `json:"deadline"`
	ScoreDetails          ScoreBreakdown `json:"scoreDetails"`
}

// CatalogReader is the scorer's read-only view of the university catalog.
type CatalogReader interface {
	ListAll(ctx context.Context) ([]catalog.University, error)
}
