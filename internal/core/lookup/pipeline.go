package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"recipe-lookup/internal/core/cache"
	"recipe-lookup/internal/core/recipe"
	"recipe-lookup/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options 查詢流程設定
type Options struct {
	SourceLang string
	TargetLang string
	// Cache 為 nil 時不使用快取
	Cache cache.Store
}

// Pipeline 食譜查詢與翻譯流程
type Pipeline struct {
	directory  Directory
	translator Translator
	sourceLang string
	targetLang string
	cache      cache.Store
}

// NewPipeline 創建查詢流程
func NewPipeline(directory Directory, translator Translator, opts Options) *Pipeline {
	if opts.SourceLang == "" {
		opts.SourceLang = "en"
	}
	return &Pipeline{
		directory:  directory,
		translator: translator,
		sourceLang: opts.SourceLang,
		targetLang: opts.TargetLang,
		cache:      opts.Cache,
	}
}

// TargetLang 翻譯目標語言
func (p *Pipeline) TargetLang() string {
	return p.targetLang
}

// Lookup 搜尋食譜並盡力翻譯名稱與做法
// 搜尋只取第一筆結果；翻譯失敗時回傳原始食譜並標記 Degraded，不會重試
func (p *Pipeline) Lookup(ctx context.Context, query string) Result {
	requestID := common.RequestIDFrom(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return failed(common.ErrEmptyQuery)
	}

	key := p.cacheKey(query)
	if cached, ok := p.fromCache(ctx, key); ok {
		return cached
	}

	start := time.Now()
	matches, err := p.directory.Search(ctx, query)
	if err != nil {
		common.LogError("Recipe search failed",
			zap.Error(err),
			zap.String("query", query),
			zap.String("request_id", requestID),
		)
		return failed(common.ErrSearch.Wrap(err))
	}
	if len(matches) == 0 {
		common.LogInfo("No recipe found",
			zap.String("query", query),
			zap.String("request_id", requestID),
		)
		return notFound()
	}

	raw := matches[0]

	translated, err := p.translate(ctx, raw)
	if err != nil {
		common.LogWarn("Translation degraded, returning original recipe",
			zap.Error(err),
			zap.String("recipe_id", raw.ID),
			zap.String("target_lang", p.targetLang),
			zap.String("request_id", requestID),
		)
		return foundUntranslated(raw)
	}

	common.LogInfo("Recipe lookup completed",
		zap.String("query", query),
		zap.String("recipe_id", raw.ID),
		zap.Int("matches", len(matches)),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", requestID),
	)

	p.toCache(ctx, key, translated)
	return found(translated)
}

// translate 同時翻譯名稱與做法，任一失敗即整體失敗
func (p *Pipeline) translate(ctx context.Context, raw recipe.RawRecipe) (recipe.TranslatedRecipe, error) {
	var name, instructions string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		name, err = p.translator.Translate(gctx, raw.Name, p.sourceLang, p.targetLang)
		return err
	})
	g.Go(func() error {
		var err error
		instructions, err = p.translator.Translate(gctx, raw.Instructions, p.sourceLang, p.targetLang)
		return err
	})
	if err := g.Wait(); err != nil {
		return recipe.TranslatedRecipe{}, common.ErrTranslationDegraded.Wrap(err)
	}

	return recipe.Translate(raw, name, instructions, p.sourceLang, p.targetLang), nil
}

func (p *Pipeline) cacheKey(query string) string {
	return "lookup:" + p.targetLang + ":" + strings.ToLower(query)
}

// fromCache 只有完整翻譯的結果會被快取
func (p *Pipeline) fromCache(ctx context.Context, key string) (Result, bool) {
	if p.cache == nil {
		return Result{}, false
	}

	val, err := p.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("Cache read failed", zap.Error(err), zap.String("key", key))
		}
		return Result{}, false
	}

	var t recipe.TranslatedRecipe
	if err := common.ParseJSON(val, &t); err != nil {
		common.LogWarn("Cache entry corrupted", zap.Error(err), zap.String("key", key))
		return Result{}, false
	}

	result := found(t)
	result.Cached = true
	return result, true
}

func (p *Pipeline) toCache(ctx context.Context, key string, t recipe.TranslatedRecipe) {
	if p.cache == nil {
		return
	}

	data, err := json.Marshal(t)
	if err != nil {
		common.LogWarn("Failed to encode cache entry", zap.Error(err))
		return
	}
	if err := p.cache.Set(ctx, key, string(data)); err != nil {
		common.LogWarn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}
