package auth

import (
	"errors"
	"net/http"

	"recipe-lookup/internal/core/identity"
	"recipe-lookup/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginRequest 登入表單
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetRequest 重設密碼表單
type ResetRequest struct {
	Email string `json:"email"`
}

// Handler 帳號相關處理程序
type Handler struct {
	service *identity.Service
}

// NewHandler 創建帳號處理程序
func NewHandler(service *identity.Service) *Handler {
	return &Handler{service: service}
}

// HandleLogin POST /auth/login
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	account, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, account)
}

// HandleRegister POST /auth/register
func (h *Handler) HandleRegister(c *gin.Context) {
	var req identity.RegisterRequest
	if !bind(c, &req) {
		return
	}

	account, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// HandleResetPassword POST /auth/reset-password
func (h *Handler) HandleResetPassword(c *gin.Context) {
	var req ResetRequest
	if !bind(c, &req) {
		return
	}

	if err := h.service.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		c.JSON(http.StatusBadRequest, common.ErrInvalidRequest.Response(false))
		return false
	}
	return true
}

// respondError 驗證錯誤回 400；身分提供者的錯誤訊息原樣回傳，
// 提供者本身故障 (5xx) 或連線失敗則回 502
func respondError(c *gin.Context, err error, providerStatus int) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	var perr *identity.ProviderError
	if errors.As(err, &perr) && perr.Status < http.StatusInternalServerError {
		c.JSON(providerStatus, common.ErrorResponse{
			Code:    common.ErrCodeIdentityError,
			Message: perr.Error(),
		})
		return
	}

	_ = c.Error(err)
	common.LogError("Identity provider unavailable",
		zap.Error(err),
		zap.String("request_id", requestid.Get(c)),
	)
	c.JSON(common.ErrBadGateway.Status, common.ErrBadGateway.Response(false))
}
