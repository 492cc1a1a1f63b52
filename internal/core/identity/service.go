package identity

import (
	"context"
	"strings"

	"recipe-lookup/internal/pkg/common"

	"go.uber.org/zap"
)

// 表單驗證訊息
const (
	MsgFillAllFields     = "Fill in all fields."
	MsgEmailsMismatch    = "Emails do not match."
	MsgPasswordsMismatch = "Passwords do not match."
	MsgEnterEmail        = "Enter your email."
)

// RegisterRequest 註冊表單
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	ConfirmEmail    string `json:"confirm_email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Service 帳號相關流程：表單驗證後交給身分提供者
type Service struct {
	provider Provider
}

// NewService 創建帳號服務
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// SignIn 登入
func (s *Service) SignIn(ctx context.Context, email, password string) (*Account, error) {
	if blank(email, password) {
		return nil, common.NewValidationError(MsgFillAllFields)
	}

	account, err := s.provider.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	common.LogInfo("User signed in",
		zap.String("uid", account.UID),
		zap.String("request_id", common.RequestIDFrom(ctx)),
	)
	return account, nil
}

// Register 註冊新帳號
// 顯示名稱的設定是盡力而為：失敗只記錄警告，註冊仍視為成功
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	if blank(req.Name, req.Email, req.ConfirmEmail, req.Password, req.ConfirmPassword) {
		return nil, common.NewValidationError(MsgFillAllFields)
	}
	if req.Email != req.ConfirmEmail {
		return nil, common.NewValidationError(MsgEmailsMismatch)
	}
	if req.Password != req.ConfirmPassword {
		return nil, common.NewValidationError(MsgPasswordsMismatch)
	}

	account, err := s.provider.SignUp(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.provider.UpdateDisplayName(ctx, account.IDToken, name); err != nil {
		common.LogWarn("Failed to set display name, continuing",
			zap.Error(err),
			zap.String("uid", account.UID),
			zap.String("request_id", common.RequestIDFrom(ctx)),
		)
	} else {
		account.DisplayName = name
	}

	common.LogInfo("User registered",
		zap.String("uid", account.UID),
		zap.String("request_id", common.RequestIDFrom(ctx)),
	)
	return account, nil
}

// SendPasswordReset 寄送重設密碼郵件
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	if blank(email) {
		return common.NewValidationError(MsgEnterEmail)
	}
	return s.provider.SendPasswordReset(ctx, strings.TrimSpace(email))
}
