package mealdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"recipe-lookup/internal/core/recipe"
	"recipe-lookup/internal/infrastructure/config"
	"recipe-lookup/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const searchPath = "/search.php"

// Client 食譜目錄（TheMealDB）客戶端
type Client struct {
	client *resty.Client
}

// searchResponse 目錄搜尋回應，meals 可能為 null
type searchResponse struct {
	Meals []map[string]interface{} `json:"meals"`
}

// NewClient 創建食譜目錄客戶端
func NewClient(cfg config.MealDBConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{client: client}
}

// Search 以關鍵字搜尋食譜，回傳目錄中的所有結果（依原順序）
// 目錄回傳 null 或空陣列時回傳空切片且無錯誤
func (c *Client) Search(ctx context.Context, query string) ([]recipe.RawRecipe, error) {
	start := time.Now()
	recipes, err := c.search(ctx, query)
	common.LogUpstreamCall("mealdb", time.Since(start), err, common.RequestIDFrom(ctx))
	return recipes, err
}

func (c *Client) search(ctx context.Context, query string) ([]recipe.RawRecipe, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("s", query).
		Get(searchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to recipe directory: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("recipe directory returned status %d", resp.StatusCode())
	}

	var result searchResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse recipe directory response: %w", err)
	}

	recipes := make([]recipe.RawRecipe, 0, len(result.Meals))
	for _, meal := range result.Meals {
		recipes = append(recipes, toRawRecipe(meal))
	}

	common.LogDebug("Recipe directory search completed",
		zap.String("query", query),
		zap.Int("matches", len(recipes)),
	)

	return recipes, nil
}

// toRawRecipe 將目錄欄位（strMeal、strIngredientN...）轉為 RawRecipe
func toRawRecipe(meal map[string]interface{}) recipe.RawRecipe {
	r := recipe.RawRecipe{
		ID:           field(meal, "idMeal"),
		Name:         field(meal, "strMeal"),
		Category:     field(meal, "strCategory"),
		Area:         field(meal, "strArea"),
		Instructions: field(meal, "strInstructions"),
		Thumbnail:    field(meal, "strMealThumb"),
		Tags:         field(meal, "strTags"),
		YouTube:      field(meal, "strYoutube"),
		Source:       field(meal, "strSource"),
	}
	for i := 1; i <= recipe.MaxIngredients; i++ {
		n := strconv.Itoa(i)
		r.SetPair(i, field(meal, "strIngredient"+n), field(meal, "strMeasure"+n))
	}
	return r
}

func field(meal map[string]interface{}, key string) string {
	switch v := meal[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Close 關閉閒置連線
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
