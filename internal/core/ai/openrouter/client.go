package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// GenerateOptions 單次生成的模型參數
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// Client OpenRouter API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-assistant.com").
		SetHeader("X-Title", "Recipe Assistant")

	return &Client{
		config: cfg,
		client: client,
	}
}

// GenerateText 發送 prompt 並回傳模型的純文字回應
func (c *Client) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.config.OpenRouter.MaxTokens
	}

	// 構建請求
	req := map[string]interface{}{
		"model": c.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens":  maxTokens,
		"temperature": opts.Temperature,
	}

	start := time.Now()

	// 發送請求
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	common.LogAICall(time.Since(start), err)

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("OpenRouter API returned error",
			zap.Int("status", resp.StatusCode()),
			zap.String("model", c.config.OpenRouter.Model),
		)
		return "", fmt.Errorf("OpenRouter API returned error: %s", resp.String())
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no content in OpenRouter response")
	}

	return result.Choices[0].Message.Content, nil
}
