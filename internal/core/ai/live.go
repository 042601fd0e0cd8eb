package ai

import (
	"context"
	"fmt"
	"strings"

	"recipe-assistant/internal/core/ai/cache"
	"recipe-assistant/internal/core/ai/extract"
	"recipe-assistant/internal/core/ai/openrouter"
	"recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// 各操作的模型參數
var (
	generateOpts = openrouter.GenerateOptions{Temperature: 0.8, MaxTokens: 2000}
	adaptOpts    = openrouter.GenerateOptions{Temperature: 0.7, MaxTokens: 2000}
	tipsOpts     = openrouter.GenerateOptions{Temperature: 0.7, MaxTokens: 800}
)

// textModel 文字生成模型介面，由 OpenRouter 客戶端實作
type textModel interface {
	GenerateText(ctx context.Context, prompt string, opts openrouter.GenerateOptions) (string, error)
}

// LiveGenerator 線上模型生成器。
// 任何一次呼叫失敗（網路、配額、回應無法解析）都退回模板生成器，
// 呼叫端拿到的結果形狀與純模板執行完全一致。
type LiveGenerator struct {
	model    textModel
	cache    cache.Store
	fallback *FallbackGenerator
}

// NewLiveGenerator 創建線上生成器
func NewLiveGenerator(model textModel, store cache.Store) *LiveGenerator {
	return &LiveGenerator{
		model:    model,
		cache:    store,
		fallback: NewFallbackGenerator(),
	}
}

// GenerateRecipe 用線上模型生成食譜，失敗時退回模板
func (g *LiveGenerator) GenerateRecipe(ctx context.Context, prefs recipe.Preferences, restrictions []string, owned []string) recipe.Recipe {
	prompt := buildGeneratePrompt(prefs, restrictions, owned)

	text, err := g.complete(ctx, prompt, generateOpts)
	if err != nil {
		common.LogWarn("AI 生成失敗，改用模板生成器",
			zap.Error(err),
		)
		return g.fallback.GenerateRecipe(ctx, prefs, restrictions, owned)
	}

	r, err := parseRecipe(text)
	if err != nil {
		common.LogWarn("AI 回應無法解析，改用模板生成器",
			zap.Error(err),
		)
		return g.fallback.GenerateRecipe(ctx, prefs, restrictions, owned)
	}

	r.ID = recipe.GeneratedRecipeID
	r.AIGenerated = true
	normalizeRecipe(&r)

	return r
}

// AdaptRecipe 用線上模型改編食譜，失敗時退回模板
func (g *LiveGenerator) AdaptRecipe(ctx context.Context, r recipe.Recipe, owned []string, substitutions map[string]string) recipe.Recipe {
	prompt, err := buildAdaptPrompt(r, owned, substitutions)
	if err != nil {
		return g.fallback.AdaptRecipe(ctx, r, owned, substitutions)
	}

	text, err := g.complete(ctx, prompt, adaptOpts)
	if err != nil {
		common.LogWarn("AI 改編失敗，改用模板生成器",
			zap.Error(err),
		)
		return g.fallback.AdaptRecipe(ctx, r, owned, substitutions)
	}

	adapted, err := parseRecipe(text)
	if err != nil {
		common.LogWarn("AI 回應無法解析，改用模板生成器",
			zap.Error(err),
		)
		return g.fallback.AdaptRecipe(ctx, r, owned, substitutions)
	}

	// 改編保留原食譜的識別碼
	adapted.ID = r.ID
	adapted.AIGenerated = true
	normalizeRecipe(&adapted)

	return adapted
}

// CookingTips 用線上模型產生烹飪技巧，失敗時退回模板
func (g *LiveGenerator) CookingTips(ctx context.Context, r recipe.Recipe) []string {
	prompt := buildTipsPrompt(r)

	text, err := g.complete(ctx, prompt, tipsOpts)
	if err != nil {
		common.LogWarn("AI 技巧生成失敗，改用模板生成器",
			zap.Error(err),
		)
		return g.fallback.CookingTips(ctx, r)
	}

	raw, kind := extract.Extract(text)
	if kind != extract.Array {
		return g.fallback.CookingTips(ctx, r)
	}

	var tips []string
	if err := common.ParseJSON(raw, &tips); err != nil || len(tips) == 0 {
		return g.fallback.CookingTips(ctx, r)
	}

	return tips
}

// complete 呼叫模型，前後掛上快取
func (g *LiveGenerator) complete(ctx context.Context, prompt string, opts openrouter.GenerateOptions) (string, error) {
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, prompt); err == nil {
			return cached, nil
		}
	}

	text, err := g.model.GenerateText(ctx, prompt, opts)
	if err != nil {
		return "", err
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, prompt, text); err != nil {
			common.LogDebug("快取寫入失敗",
				zap.Error(err),
			)
		}
	}

	return text, nil
}

// parseRecipe 從模型回應擷取並解析食譜
func parseRecipe(text string) (recipe.Recipe, error) {
	raw, kind := extract.Extract(text)
	if kind != extract.Object {
		return recipe.Recipe{}, fmt.Errorf("no recipe object found in response")
	}

	var r recipe.Recipe
	if err := common.ParseJSON(raw, &r); err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to parse recipe: %w", err)
	}
	return r, nil
}

// normalizeRecipe 補齊模型回應可能缺漏的欄位
func normalizeRecipe(r *recipe.Recipe) {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.Servings <= 0 {
		r.Servings = 4
	}
	if r.PrepTime < 0 {
		r.PrepTime = 0
	}
	if r.CookTime < 0 {
		r.CookTime = 0
	}
}

func buildGeneratePrompt(prefs recipe.Preferences, restrictions []string, owned []string) string {
	restrictionsText := "none"
	if len(restrictions) > 0 {
		restrictionsText = common.StringSliceToString(restrictions)
	}
	ingredientsText := "use common pantry items"
	if len(owned) > 0 {
		ingredientsText = common.StringSliceToString(owned)
	}

	return fmt.Sprintf(`You are an expert chef and recipe developer. Generate a detailed recipe in JSON format.

Specifications:
- Cuisine: %s
- Meal Type: %s
- Difficulty: %s
- Dietary Restrictions: %s
- Available Ingredients: %s

IMPORTANT: Return ONLY a valid JSON object with this exact structure, no additional text:

{
    "name": "Recipe Name",
    "cuisine": "Cuisine type",
    "meal_type": "Breakfast/Lunch/Dinner",
    "difficulty": "Easy/Medium/Hard",
    "prep_time": 15,
    "cook_time": 20,
    "servings": 4,
    "ingredients": ["ingredient1", "ingredient2"],
    "steps": ["Step 1", "Step 2"],
    "dietary_info": {
        "vegetarian": true,
        "vegan": false,
        "gluten_free": false,
        "dairy_free": false,
        "nut_free": true,
        "low_carb": false,
        "keto": false
    },
    "tags": ["tag1", "tag2"],
    "ai_generated": true
}

Make sure the recipe uses the available ingredients when possible. Generate a creative and delicious recipe.`,
		orAny(prefs.Cuisine), orAny(prefs.MealType), orAny(prefs.Difficulty), restrictionsText, ingredientsText)
}

func buildAdaptPrompt(r recipe.Recipe, owned []string, substitutions map[string]string) (string, error) {
	recipeText, err := common.ToJSON(r)
	if err != nil {
		return "", err
	}

	ingredientsText := "use what's available"
	if len(owned) > 0 {
		ingredientsText = common.StringSliceToString(owned)
	}

	subsText := "none"
	if len(substitutions) > 0 {
		pairs := make([]string, 0, len(substitutions))
		for oldIng, newIng := range substitutions {
			pairs = append(pairs, fmt.Sprintf("%s -> %s", oldIng, newIng))
		}
		subsText = common.StringSliceToString(pairs)
	}

	return fmt.Sprintf(`You are an expert chef. Adapt the following recipe to use these available ingredients and substitutions.

Available Ingredients: %s
Substitutions: %s

Original Recipe:
%s

IMPORTANT: Return ONLY the adapted recipe as valid JSON with the same structure. Make smart substitutions and adjust cooking steps accordingly. Return only JSON, no additional text.`,
		ingredientsText, subsText, recipeText), nil
}

func buildTipsPrompt(r recipe.Recipe) string {
	summary := fmt.Sprintf("%s - %s %s - Difficulty: %s", r.Name, r.Cuisine, r.MealType, r.Difficulty)

	ingredients := r.Ingredients
	if len(ingredients) > 10 {
		ingredients = ingredients[:10]
	}

	return fmt.Sprintf(`You are a professional chef. Provide 5 helpful cooking tips for this recipe.

Recipe: %s
Ingredients: %s
Cooking time: %d minutes

IMPORTANT: Return ONLY a JSON array of strings, no additional text: ["tip1", "tip2", "tip3", "tip4", "tip5"]`,
		summary, strings.Join(ingredients, ", "), r.CookTime)
}

// orAny 偏好未指定時以 Any 呈現給模型
func orAny(s string) string {
	if s == "" {
		return "Any"
	}
	return s
}

var _ Generator = (*LiveGenerator)(nil)
