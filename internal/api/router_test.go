package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-lookup/internal/core/identity"
	"recipe-lookup/internal/core/lookup"
	"recipe-lookup/internal/core/recipe"
	"recipe-lookup/internal/core/theme"
	"recipe-lookup/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDirectory struct{}

func (staticDirectory) Search(ctx context.Context, query string) ([]recipe.RawRecipe, error) {
	if query == "nothing" {
		return nil, nil
	}
	return []recipe.RawRecipe{{ID: "1", Name: "Pasta", Instructions: "Boil."}}, nil
}

type upperTranslator struct{}

func (upperTranslator) Translate(ctx context.Context, text, src, tgt string) (string, error) {
	return strings.ToUpper(text), nil
}

type okProvider struct{}

func (okProvider) SignIn(ctx context.Context, email, password string) (*identity.Account, error) {
	return &identity.Account{UID: "u1", Email: email}, nil
}

func (okProvider) SignUp(ctx context.Context, email, password string) (*identity.Account, error) {
	return &identity.Account{UID: "u2", Email: email}, nil
}

func (okProvider) UpdateDisplayName(ctx context.Context, idToken, displayName string) error {
	return nil
}

func (okProvider) SendPasswordReset(ctx context.Context, email string) error {
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		App:         config.AppConfig{Debug: true, Version: "test"},
		Translate:   config.TranslateConfig{SourceLang: "en", TargetLang: "pt"},
		RateLimit:   config.RateLimitConfig{Enabled: true, Requests: 100, Window: time.Minute, Burst: 100},
		DedupWindow: time.Second,
	}
	srv := SetupRouter(cfg, Deps{
		Pipeline: lookup.NewPipeline(staticDirectory{}, upperTranslator{}, lookup.Options{SourceLang: "en", TargetLang: "pt"}),
		Identity: identity.NewService(okProvider{}),
		Theme:    theme.NewContext("light"),
	})
	t.Cleanup(srv.Close)
	return srv
}

func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	srv.Engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Routes(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/ready", "", http.StatusOK},
		{http.MethodGet, "/live", "", http.StatusOK},
		{http.MethodGet, "/api/v1/recipes/lookup?q=pasta", "", http.StatusOK},
		{http.MethodGet, "/api/v1/recipes/lookup?q=nothing", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/recipes/lookup?q=%20", "", http.StatusBadRequest},
		{http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"secret1"}`, http.StatusOK},
		{http.MethodPost, "/api/v1/auth/reset-password", `{"email":"a@b.c"}`, http.StatusOK},
		{http.MethodGet, "/api/v1/theme", "", http.StatusOK},
		{http.MethodPost, "/api/v1/theme/toggle", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(srv, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_LookupBody(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/api/v1/recipes/lookup?q=pasta", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Recipe struct {
			Name     string `json:"name"`
			Language string `json:"language"`
		} `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "found", body.Status)
	assert.Equal(t, "PASTA", body.Recipe.Name)
	assert.Equal(t, "pt", body.Recipe.Language)
}

func TestRouter_DuplicateRegistrationRejected(t *testing.T) {
	srv := newTestServer(t)
	body := `{"name":"Ana","email":"a@b.c","confirm_email":"a@b.c","password":"secret1","confirm_password":"secret1"}`

	assert.Equal(t, http.StatusCreated, do(srv, http.MethodPost, "/api/v1/auth/register", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(srv, http.MethodPost, "/api/v1/auth/register", body).Code)
}
