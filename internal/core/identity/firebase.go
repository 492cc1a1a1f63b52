package identity

import (
	"context"
	"fmt"
	"strings"

	"recipe-lookup/internal/infrastructure/config"
	"recipe-lookup/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// FirebaseProvider 透過 Identity Toolkit REST API 存取 Firebase Authentication
type FirebaseProvider struct {
	client *resty.Client
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type updateRequest struct {
	IDToken           string `json:"idToken"`
	DisplayName       string `json:"displayName"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type oobCodeRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewFirebaseProvider 創建 Firebase 身分提供者
func NewFirebaseProvider(cfg config.IdentityConfig) *FirebaseProvider {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", cfg.APIKey)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &FirebaseProvider{client: client}
}

// SignIn 以電子郵件與密碼登入
func (f *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*Account, error) {
	var out accountResponse
	if err := f.post(ctx, "/accounts:signInWithPassword", credentialsRequest{email, password, true}, &out); err != nil {
		return nil, err
	}
	return out.account(), nil
}

// SignUp 建立新帳號
func (f *FirebaseProvider) SignUp(ctx context.Context, email, password string) (*Account, error) {
	var out accountResponse
	if err := f.post(ctx, "/accounts:signUp", credentialsRequest{email, password, true}, &out); err != nil {
		return nil, err
	}
	return out.account(), nil
}

// UpdateDisplayName 設定帳號顯示名稱
func (f *FirebaseProvider) UpdateDisplayName(ctx context.Context, idToken, displayName string) error {
	return f.post(ctx, "/accounts:update", updateRequest{IDToken: idToken, DisplayName: displayName}, nil)
}

// SendPasswordReset 寄送重設密碼郵件
func (f *FirebaseProvider) SendPasswordReset(ctx context.Context, email string) error {
	return f.post(ctx, "/accounts:sendOobCode", oobCodeRequest{RequestType: "PASSWORD_RESET", Email: email}, nil)
}

func (f *FirebaseProvider) post(ctx context.Context, path string, body, out interface{}) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("failed to send request to identity provider: %w", err)
	}

	if !resp.IsSuccess() {
		var e errorResponse
		if err := common.ParseJSONBytes(resp.Body(), &e); err != nil {
			return &ProviderError{Status: resp.StatusCode()}
		}
		return &ProviderError{Status: resp.StatusCode(), Message: e.Error.Message}
	}

	if out == nil {
		return nil
	}
	if err := common.ParseJSONBytes(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to parse identity provider response: %w", err)
	}
	return nil
}

func (r accountResponse) account() *Account {
	return &Account{
		UID:          r.LocalID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    r.ExpiresIn,
	}
}
