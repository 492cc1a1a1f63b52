package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"recipe-lookup/internal/core/cache"
	"recipe-lookup/internal/infrastructure/config"
	"recipe-lookup/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig_EndToEnd(t *testing.T) {
	mealdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.php", r.URL.Path)
		assert.Equal(t, "pasta", r.URL.Query().Get("s"))
		w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"Pasta","strInstructions":"Boil.","strIngredient1":"penne","strMeasure1":"200g"}]}`))
	}))
	defer mealdb.Close()

	translator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text       string `json:"text"`
			SourceLang string `json:"sourceLang"`
			TargetLang string `json:"targetLang"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "en", req.SourceLang)
		assert.Equal(t, "pt", req.TargetLang)
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "PT:" + req.Text})
	}))
	defer translator.Close()

	cfg := &config.Config{
		MealDB:    config.MealDBConfig{BaseURL: mealdb.URL, Timeout: 2 * time.Second},
		Translate: config.TranslateConfig{BaseURL: translator.URL, SourceLang: "en", TargetLang: "pt", Timeout: 2 * time.Second},
	}

	p, closeClients := FromConfig(cfg, nil)
	defer closeClients()

	result := p.Lookup(context.Background(), "pasta")

	require.Equal(t, StatusFound, result.Status)
	assert.Equal(t, "PT:Pasta", result.Recipe.Name)
	assert.Equal(t, "PT:Boil.", result.Recipe.Instructions)
	assert.Equal(t, "penne", result.Recipe.Ingredients[0].Ingredient)
	assert.Equal(t, "pt", p.TargetLang())
}

func TestFromConfig_DefaultConfigSearchesEveryTime(t *testing.T) {
	var searches int32
	var down atomic.Bool
	mealdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&searches, 1)
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"Pasta","strInstructions":"Boil."}]}`))
	}))
	defer mealdb.Close()

	translator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"translatedText":"ok"}`))
	}))
	defer translator.Close()

	t.Setenv("MEALDB_BASE_URL", mealdb.URL)
	t.Setenv("TRANSLATE_BASE_URL", translator.URL)
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	store, err := cache.New(cfg)
	require.NoError(t, err)
	require.Nil(t, store)

	p, closeClients := FromConfig(cfg, store)
	defer closeClients()

	first := p.Lookup(context.Background(), "pasta")
	assert.Equal(t, StatusFound, first.Status)

	second := p.Lookup(context.Background(), "pasta")
	assert.Equal(t, StatusFound, second.Status)
	assert.False(t, second.Cached)

	// 目錄故障時不會拿舊結果頂替
	down.Store(true)
	third := p.Lookup(context.Background(), "PASTA")
	assert.Equal(t, StatusFailed, third.Status)
	assert.ErrorIs(t, third.Reason, common.ErrSearch)

	assert.Equal(t, int32(3), atomic.LoadInt32(&searches))
}

func TestFromConfig_EmptyInstructionsStillTranslated(t *testing.T) {
	mealdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":[{"idMeal":"9","strMeal":"Toast","strInstructions":""}]}`))
	}))
	defer mealdb.Close()

	var translations int32
	translator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&translations, 1)
		w.Write([]byte(`{"translatedText":"Torrada"}`))
	}))
	defer translator.Close()

	cfg := &config.Config{
		MealDB:    config.MealDBConfig{BaseURL: mealdb.URL, Timeout: 2 * time.Second},
		Translate: config.TranslateConfig{BaseURL: translator.URL, SourceLang: "en", TargetLang: "pt", Timeout: 2 * time.Second},
	}
	p, closeClients := FromConfig(cfg, nil)
	defer closeClients()

	result := p.Lookup(context.Background(), "toast")

	require.Equal(t, StatusFound, result.Status)
	assert.False(t, result.Degraded)
	assert.Equal(t, "Torrada", result.Recipe.Name)
	assert.Equal(t, "", result.Recipe.Instructions)
	assert.Equal(t, int32(1), atomic.LoadInt32(&translations))
}
