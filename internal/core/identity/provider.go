package identity

import (
	"context"
	"fmt"
)

// Account 身分提供者回傳的帳號資訊
type Account struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    string `json:"expires_in,omitempty"`
}

// Provider 外部身分驗證服務
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Account, error)
	SignUp(ctx context.Context, email, password string) (*Account, error)
	UpdateDisplayName(ctx context.Context, idToken, displayName string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// ProviderError 身分提供者回傳的錯誤，Message 原樣顯示給使用者
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("identity provider returned status %d", e.Status)
	}
	return e.Message
}
