package recipe

import "strings"

// MaxIngredients 食譜目錄每筆資料固定的食材欄位數（索引 1..20）
const MaxIngredients = 20

// Pair 單一索引的食材與份量，缺漏時為空字串
type Pair struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure"`
}

// RawRecipe 食譜目錄回傳的單筆食譜
// Ingredients[0] 對應目錄資料中的索引 1
type RawRecipe struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Category     string               `json:"category,omitempty"`
	Area         string               `json:"area,omitempty"`
	Instructions string               `json:"instructions"`
	Thumbnail    string               `json:"thumbnail,omitempty"`
	Tags         string               `json:"tags,omitempty"`
	YouTube      string               `json:"youtube,omitempty"`
	Source       string               `json:"source,omitempty"`
	Ingredients  [MaxIngredients]Pair `json:"ingredients"`
}

// TranslatedRecipe 名稱與做法已翻譯的食譜，其餘欄位與原始資料相同
type TranslatedRecipe struct {
	RawRecipe
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Ingredient 可顯示的食材項目
type Ingredient struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// SetPair 以 1 為起點的索引設定食材，超出範圍時忽略
func (r *RawRecipe) SetPair(index int, ingredient, measure string) {
	if index < 1 || index > MaxIngredients {
		return
	}
	r.Ingredients[index-1] = Pair{Ingredient: ingredient, Measure: measure}
}

// HasThumbnail 是否有縮圖
func (r RawRecipe) HasThumbnail() bool {
	return strings.TrimSpace(r.Thumbnail) != ""
}

// DisplayIngredients 依索引 1..20 產生可顯示的食材清單
// 食材名稱為空白的索引會被排除，份量原樣保留不另外檢查
func (r RawRecipe) DisplayIngredients() []Ingredient {
	list := make([]Ingredient, 0, MaxIngredients)
	for i := 1; i <= MaxIngredients; i++ {
		p := r.Ingredients[i-1]
		name := strings.TrimSpace(p.Ingredient)
		if name == "" {
			continue
		}
		list = append(list, Ingredient{
			Index:   i,
			Name:    name,
			Measure: p.Measure,
		})
	}
	return list
}

// Translate 以翻譯後的名稱與做法建立 TranslatedRecipe
// raw 以值傳入，食材與份量陣列會被完整複製
func Translate(raw RawRecipe, name, instructions, sourceLang, targetLang string) TranslatedRecipe {
	translated := raw
	translated.Name = name
	translated.Instructions = instructions
	return TranslatedRecipe{
		RawRecipe:  translated,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	}
}
