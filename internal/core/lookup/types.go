package lookup

import (
	"context"

	"recipe-lookup/internal/core/recipe"
)

// Directory 食譜目錄搜尋
type Directory interface {
	Search(ctx context.Context, query string) ([]recipe.RawRecipe, error)
}

// Translator 文字翻譯
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Status 查詢結果的種類，每次查詢只會產生其中一種
type Status string

const (
	StatusFound             Status = "found"
	StatusFoundUntranslated Status = "found_untranslated"
	StatusNotFound          Status = "not_found"
	StatusFailed            Status = "failed"
)

// Result 單次查詢的最終結果
//
//	Found:             Recipe 為翻譯後的食譜
//	FoundUntranslated: Raw 為原始食譜，Degraded 為 true
//	NotFound:          無食譜
//	Failed:            Reason 為 common.ErrEmptyQuery 或 common.ErrSearch
type Result struct {
	Status     Status                   `json:"status"`
	Recipe     *recipe.TranslatedRecipe `json:"recipe,omitempty"`
	Raw        *recipe.RawRecipe        `json:"raw,omitempty"`
	Reason     error                    `json:"-"`
	Degraded   bool                     `json:"degraded"`
	Cached     bool                     `json:"cached,omitempty"`
	Generation uint64                   `json:"generation,omitempty"`
}

// Display 回傳要顯示的食譜（翻譯或原始），沒有食譜時 ok 為 false
func (r Result) Display() (recipe.RawRecipe, bool) {
	switch {
	case r.Recipe != nil:
		return r.Recipe.RawRecipe, true
	case r.Raw != nil:
		return *r.Raw, true
	default:
		return recipe.RawRecipe{}, false
	}
}

func found(t recipe.TranslatedRecipe) Result {
	return Result{Status: StatusFound, Recipe: &t}
}

func foundUntranslated(raw recipe.RawRecipe) Result {
	return Result{Status: StatusFoundUntranslated, Raw: &raw, Degraded: true}
}

func notFound() Result {
	return Result{Status: StatusNotFound}
}

func failed(reason error) Result {
	return Result{Status: StatusFailed, Reason: reason}
}
