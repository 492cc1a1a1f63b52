package theme

import (
	"net/http"

	themeCore "recipe-lookup/internal/core/theme"
	"recipe-lookup/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 主題處理程序
type Handler struct {
	theme *themeCore.Context
}

// NewHandler 創建主題處理程序
func NewHandler(t *themeCore.Context) *Handler {
	return &Handler{theme: t}
}

// HandleGet GET /theme
func (h *Handler) HandleGet(c *gin.Context) {
	c.JSON(http.StatusOK, h.theme.State())
}

// HandleToggle POST /theme/toggle
func (h *Handler) HandleToggle(c *gin.Context) {
	state := h.theme.Toggle()
	common.LogInfo("主題切換", zap.String("mode", string(state.Mode)))
	c.JSON(http.StatusOK, state)
}
