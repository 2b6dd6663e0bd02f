package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipath/backend/pkg/catalog"
)

type stubCatalog struct {
	universities []catalog.University
	err          error
}

func (s *stubCatalog) ListAll(context.Context) ([]catalog.University, error) {
	return s.universities, s.err
}

func validRequest() Request {
	return Request{GPA: "3.95", SAT: "1550", TOEFL: "7.8", Major: "Computer Science"}
}

func TestParseProfile(t *testing.T) {
	t.Run("all fields parsed", func(t *testing.T) {
		p, err := parseProfile(validRequest())
		require.NoError(t, err)
		assert.Equal(t, 3.95, p.GPA)
		assert.Equal(t, 1550, p.SATScore)
		assert.Equal(t, 7.8, p.LanguageScore)
		assert.Equal(t, "Computer Science", p.Major)
	})

	t.Run("gpa with scale suffix", func(t *testing.T) {
		req := validRequest()
		req.GPA = "3.8/4.0"
		p, err := parseProfile(req)
		require.NoError(t, err)
		assert.Equal(t, 3.8, p.GPA)
	})

	t.Run("missing or malformed fields", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Request)
		}{
			{"empty gpa", func(r *Request) { r.GPA = "" }},
			{"blank sat", func(r *Request) { r.SAT = "   " }},
			{"empty language score", func(r *Request) { r.TOEFL = "" }},
			{"empty major", func(r *Request) { r.Major = "" }},
			{"non-numeric gpa", func(r *Request) { r.GPA = "great" }},
			{"fractional sat", func(r *Request) { r.SAT = "1400.5" }},
			{"non-numeric language score", func(r *Request) { r.TOEFL = "fluent" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validRequest()
				tt.mutate(&req)
				_, err := parseProfile(req)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})
}

func TestServiceSuggest(t *testing.T) {
	t.Run("invalid request fails before the catalog is touched", func(t *testing.T) {
		repo := &stubCatalog{err: errors.New("must not be called")}
		svc := NewService(repo)
		_, err := svc.Suggest(context.Background(), Request{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("catalog failure maps to unavailable", func(t *testing.T) {
		svc := NewService(&stubCatalog{err: errors.New("connection refused")})
		_, err := svc.Suggest(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrCatalogUnavailable)
	})

	t.Run("scored suggestions come back ranked", func(t *testing.T) {
		svc := NewService(&stubCatalog{universities: []catalog.University{
			testUniversity("Backup School", 300, "", "Computer Science"),
			testUniversity("Dream School", 2, "", "Computer Science"),
		}})
		got, err := svc.Suggest(context.Background(), validRequest())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Dream School", got[0].Name)
		assert.Equal(t, "Backup School", got[1].Name)
	})

	t.Run("empty catalog yields empty suggestions without error", func(t *testing.T) {
		svc := NewService(&stubCatalog{})
		got, err := svc.Suggest(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
