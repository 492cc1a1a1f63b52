package recipe

import (
	"context"
	"errors"
	"net/http"

	recipeLookup "recipe-lookup/internal/core/lookup"
	recipeCore "recipe-lookup/internal/core/recipe"
	"recipe-lookup/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Looker 執行單次食譜查詢
type Looker interface {
	Lookup(ctx context.Context, query string) recipeLookup.Result
}

// RecipeView 回傳給客戶端的食譜
type RecipeView struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Category     string                  `json:"category,omitempty"`
	Area         string                  `json:"area,omitempty"`
	Instructions string                  `json:"instructions"`
	Thumbnail    string                  `json:"thumbnail,omitempty"`
	Tags         string                  `json:"tags,omitempty"`
	YouTube      string                  `json:"youtube,omitempty"`
	Source       string                  `json:"source,omitempty"`
	Ingredients  []recipeCore.Ingredient `json:"ingredients"`
	Language     string                  `json:"language"`
}

// LookupResponse 查詢成功的響應
type LookupResponse struct {
	Status   recipeLookup.Status `json:"status"`
	Recipe   RecipeView          `json:"recipe"`
	Degraded bool                `json:"degraded"`
	Warning  string              `json:"warning,omitempty"`
	Cached   bool                `json:"cached,omitempty"`
}

// Handler 食譜查詢處理程序
type Handler struct {
	looker     Looker
	sourceLang string
	debug      bool
}

// NewHandler 創建食譜查詢處理程序
func NewHandler(looker Looker, sourceLang string, debug bool) *Handler {
	return &Handler{looker: looker, sourceLang: sourceLang, debug: debug}
}

// HandleLookup GET /recipes/lookup?q=
func (h *Handler) HandleLookup(c *gin.Context) {
	requestID := requestid.Get(c)
	query := c.Query("q")

	common.LogInfo("開始處理食譜查詢",
		zap.String("request_id", requestID),
		zap.String("query", query),
		zap.String("client_ip", c.ClientIP()),
	)

	result := h.looker.Lookup(c.Request.Context(), query)

	switch result.Status {
	case recipeLookup.StatusFound:
		c.JSON(http.StatusOK, LookupResponse{
			Status: result.Status,
			Recipe: toView(result.Recipe.RawRecipe, result.Recipe.TargetLang),
			Cached: result.Cached,
		})
	case recipeLookup.StatusFoundUntranslated:
		c.JSON(http.StatusOK, LookupResponse{
			Status:   result.Status,
			Recipe:   toView(*result.Raw, h.sourceLang),
			Degraded: true,
			Warning:  common.ErrTranslationDegraded.Message,
		})
	case recipeLookup.StatusNotFound:
		c.JSON(common.ErrNotFound.Status, common.ErrNotFound.Response(false))
	default:
		h.fail(c, result.Reason)
	}
}

func (h *Handler) fail(c *gin.Context, reason error) {
	var ce *common.CustomError
	if !errors.As(reason, &ce) {
		ce = common.ErrInternalError.Wrap(reason)
	}
	if ce.Status >= http.StatusInternalServerError {
		_ = c.Error(reason)
	}
	c.JSON(ce.Status, ce.Response(h.debug))
}

func toView(r recipeCore.RawRecipe, lang string) RecipeView {
	return RecipeView{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		Area:         r.Area,
		Instructions: r.Instructions,
		Thumbnail:    r.Thumbnail,
		Tags:         r.Tags,
		YouTube:      r.YouTube,
		Source:       r.Source,
		Ingredients:  r.DisplayIngredients(),
		Language:     lang,
	}
}
