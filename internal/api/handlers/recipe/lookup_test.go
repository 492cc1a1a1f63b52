package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	recipeLookup "recipe-lookup/internal/core/lookup"
	recipeCore "recipe-lookup/internal/core/recipe"
	"recipe-lookup/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLooker struct {
	result recipeLookup.Result
	query  string
}

func (s *stubLooker) Lookup(ctx context.Context, query string) recipeLookup.Result {
	s.query = query
	return s.result
}

func sampleRaw() recipeCore.RawRecipe {
	r := recipeCore.RawRecipe{ID: "52771", Name: "Spicy Arrabiata Penne", Instructions: "Boil water."}
	r.SetPair(1, "penne rigate", "1 pound")
	r.SetPair(2, " ", "ignored")
	r.SetPair(3, "olive oil", "")
	return r
}

func serve(t *testing.T, looker Looker, url string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/lookup", NewHandler(looker, "en", false).HandleLookup)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleLookup_Found(t *testing.T) {
	translated := recipeCore.Translate(sampleRaw(), "Penne Arrabiata Picante", "Ferva a água.", "en", "pt")
	looker := &stubLooker{result: recipeLookup.Result{Status: recipeLookup.StatusFound, Recipe: &translated}}

	w, body := serve(t, looker, "/lookup?q=arrabiata")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "arrabiata", looker.query)
	assert.Equal(t, "found", body["status"])
	assert.Equal(t, false, body["degraded"])
	assert.NotContains(t, body, "warning")

	rec := body["recipe"].(map[string]interface{})
	assert.Equal(t, "Penne Arrabiata Picante", rec["name"])
	assert.Equal(t, "pt", rec["language"])

	ingredients := rec["ingredients"].([]interface{})
	require.Len(t, ingredients, 2)
	assert.Equal(t, "penne rigate", ingredients[0].(map[string]interface{})["name"])
	assert.Equal(t, float64(3), ingredients[1].(map[string]interface{})["index"])
	assert.Equal(t, "", ingredients[1].(map[string]interface{})["measure"])
}

func TestHandleLookup_Degraded(t *testing.T) {
	raw := sampleRaw()
	looker := &stubLooker{result: recipeLookup.Result{Status: recipeLookup.StatusFoundUntranslated, Raw: &raw, Degraded: true}}

	w, body := serve(t, looker, "/lookup?q=arrabiata")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["degraded"])
	assert.Equal(t, common.ErrTranslationDegraded.Message, body["warning"])
	rec := body["recipe"].(map[string]interface{})
	assert.Equal(t, "Spicy Arrabiata Penne", rec["name"])
	assert.Equal(t, "en", rec["language"])
}

func TestHandleLookup_Errors(t *testing.T) {
	cases := map[string]struct {
		result recipeLookup.Result
		status int
		code   string
	}{
		"not found": {
			result: recipeLookup.Result{Status: recipeLookup.StatusNotFound},
			status: http.StatusNotFound,
			code:   common.ErrCodeNotFound,
		},
		"empty query": {
			result: recipeLookup.Result{Status: recipeLookup.StatusFailed, Reason: common.ErrEmptyQuery},
			status: http.StatusBadRequest,
			code:   common.ErrCodeEmptyQuery,
		},
		"search failure": {
			result: recipeLookup.Result{Status: recipeLookup.StatusFailed, Reason: common.ErrSearch.Wrap(errors.New("dial tcp: refused"))},
			status: http.StatusBadGateway,
			code:   common.ErrCodeSearchError,
		},
		"unexpected reason": {
			result: recipeLookup.Result{Status: recipeLookup.StatusFailed, Reason: errors.New("boom")},
			status: http.StatusInternalServerError,
			code:   common.ErrCodeInternalError,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w, body := serve(t, &stubLooker{result: tc.result}, "/lookup?q=x")

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body["code"])
			assert.NotContains(t, body, "details")
		})
	}
}
