package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-lookup/internal/infrastructure/config"
	"recipe-lookup/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// ErrMissingTranslation 回應中沒有翻譯文字
var ErrMissingTranslation = errors.New("translation response has no translated text")

// Request 翻譯請求
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// Response 翻譯回應
type Response struct {
	TranslatedText string `json:"translatedText"`
}

// Client 翻譯服務客戶端
type Client struct {
	client *resty.Client
	path   string
}

// NewClient 創建翻譯服務客戶端
func NewClient(cfg config.TranslateConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	path := cfg.Path
	if path == "" {
		path = "/translate"
	}

	return &Client{client: client, path: path}
}

// Translate 將文字從 sourceLang 翻譯為 targetLang
// 空白文字不送出請求，直接原樣回傳
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	start := time.Now()
	translated, err := c.translate(ctx, Request{Text: text, SourceLang: sourceLang, TargetLang: targetLang})
	common.LogUpstreamCall("translate", time.Since(start), err, common.RequestIDFrom(ctx))
	return translated, err
}

func (c *Client) translate(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.path)
	if err != nil {
		return "", fmt.Errorf("failed to send request to translation service: %w", err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("translation service returned status %d", resp.StatusCode())
	}

	var result Response
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse translation response: %w", err)
	}

	if result.TranslatedText == "" {
		return "", ErrMissingTranslation
	}

	return result.TranslatedText, nil
}

// Close 關閉閒置連線
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
