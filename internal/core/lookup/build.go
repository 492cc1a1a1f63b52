package lookup

import (
	"recipe-lookup/internal/core/cache"
	"recipe-lookup/internal/core/mealdb"
	"recipe-lookup/internal/core/translate"
	"recipe-lookup/internal/infrastructure/config"
)

// FromConfig 以設定建立食譜目錄與翻譯客戶端並組成查詢流程
// 回傳的 close 會關閉兩個客戶端
func FromConfig(cfg *config.Config, store cache.Store) (*Pipeline, func()) {
	directory := mealdb.NewClient(cfg.MealDB)
	translator := translate.NewClient(cfg.Translate)

	p := NewPipeline(directory, translator, Options{
		SourceLang: cfg.Translate.SourceLang,
		TargetLang: cfg.Translate.TargetLang,
		Cache:      store,
	})
	return p, func() {
		_ = directory.Close()
		_ = translator.Close()
	}
}
