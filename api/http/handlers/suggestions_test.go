package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipath/backend/pkg/match"
)

type stubSuggestUC struct {
	suggestions []match.Suggestion
	err         error
}

func (s *stubSuggestUC) Suggest(context.Context, match.Request) ([]match.Suggestion, error) {
	return s.suggestions, s.err
}

func suggestApp(uc match.UseCase) *fiber.App {
	app := fiber.New()
	app.Post("/suggestions", NewSuggestionHandler(uc).Suggest)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSuggestHandler(t *testing.T) {
	t.Run("returns suggestions", func(t *testing.T) {
		app := suggestApp(&stubSuggestUC{suggestions: []match.Suggestion{{Name: "MIT", MatchScore: 58}}})
		resp := postJSON(t, app, "/suggestions", match.Request{GPA: "3.9", SAT: "1500", TOEFL: "7.5", Major: "CS"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got []match.Suggestion
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "MIT", got[0].Name)
	})

	t.Run("no matches is an empty array, not null", func(t *testing.T) {
		app := suggestApp(&stubSuggestUC{})
		resp := postJSON(t, app, "/suggestions", match.Request{GPA: "2.0", SAT: "900", TOEFL: "5.0", Major: "CS"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		buf := new(bytes.Buffer)
		_, err := buf.ReadFrom(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", buf.String())
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		app := suggestApp(&stubSuggestUC{err: match.ErrValidation})
		resp := postJSON(t, app, "/suggestions", match.Request{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("catalog outage maps to 503", func(t *testing.T) {
		app := suggestApp(&stubSuggestUC{err: match.ErrCatalogUnavailable})
		resp := postJSON(t, app, "/suggestions", match.Request{GPA: "3.9", SAT: "1500", TOEFL: "7.5", Major: "CS"})
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		app := suggestApp(&stubSuggestUC{})
		req := httptest.NewRequest(http.MethodPost, "/suggestions", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
