// Package ai 提供食譜生成器，有線上模型與離線模板兩種後端。
// 三個操作（生成、改編、技巧）都是全函數：任何內部失敗都在生成器內
// 吸收並退回模板結果，呼叫端永遠拿到可用的值。
package ai

import (
	"context"

	"recipe-assistant/internal/core/ai/cache"
	"recipe-assistant/internal/core/ai/openrouter"
	"recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator 食譜生成器介面
type Generator interface {
	// GenerateRecipe 依偏好、飲食限制與持有食材生成一份新食譜
	GenerateRecipe(ctx context.Context, prefs recipe.Preferences, restrictions []string, owned []string) recipe.Recipe
	// AdaptRecipe 依持有食材與替換表改編既有食譜，回傳新的食譜值
	AdaptRecipe(ctx context.Context, r recipe.Recipe, owned []string, substitutions map[string]string) recipe.Recipe
	// CookingTips 為食譜產生烹飪技巧
	CookingTips(ctx context.Context, r recipe.Recipe) []string
}

// NewGenerator 依配置選擇生成器後端。
// 後端選擇是行程啟動時的一次性決定：有配置好的 OpenRouter 金鑰
// 就用線上生成器，否則用離線模板生成器。
func NewGenerator(cfg *config.Config, store cache.Store) Generator {
	if cfg.OpenRouter.Enabled && cfg.OpenRouter.APIKey != "" {
		common.LogInfo("使用線上 AI 生成器",
			zap.String("model", cfg.OpenRouter.Model),
		)
		return NewLiveGenerator(openrouter.NewClient(cfg), store)
	}

	common.LogInfo("未配置 AI 服務，使用模板生成器")
	return NewFallbackGenerator()
}
