package ai

import (
	"context"
	"fmt"
	"strings"

	"recipe-assistant/internal/core/recipe"
)

// cuisineIngredients 各菜系的常見風味食材
var cuisineIngredients = map[string][]string{
	"Italian":       {"tomatoes", "basil", "parmesan cheese"},
	"Indian":        {"curry powder", "turmeric", "cumin"},
	"Japanese":      {"soy sauce", "ginger", "sesame oil"},
	"Mexican":       {"cilantro", "lime", "cumin"},
	"Mediterranean": {"lemon", "oregano", "olives"},
}

// defaultPantry 沒有提供食材時的基本食材
var defaultPantry = []string{"olive oil", "garlic", "salt", "pepper"}

// genericSteps 模板食譜的固定步驟
var genericSteps = []string{
	"Prepare all ingredients. Wash and chop vegetables if needed.",
	"Heat oil in a pan over medium heat. Add aromatics and cook until fragrant.",
	"Add main ingredients and cook for 5-7 minutes until tender.",
	"Season with salt, pepper, and spices to taste.",
	"Stir everything together and cook for another 2-3 minutes.",
	"Serve hot, garnished with fresh herbs if available.",
}

// FallbackGenerator 離線模板生成器，完全確定性，不做任何網路呼叫
type FallbackGenerator struct{}

// NewFallbackGenerator 創建模板生成器
func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// GenerateRecipe 用模板生成食譜
func (g *FallbackGenerator) GenerateRecipe(ctx context.Context, prefs recipe.Preferences, restrictions []string, owned []string) recipe.Recipe {
	cuisine := prefs.Cuisine
	if cuisine == "" {
		cuisine = "International"
	}
	mealType := prefs.MealType
	if mealType == "" {
		mealType = "Dinner"
	}
	difficulty := prefs.Difficulty
	if difficulty == "" {
		difficulty = recipe.DifficultyEasy
	}

	isVegan := containsRestriction(restrictions, "vegan")
	// 生成端的 vegan 蘊含 vegetarian；匹配端刻意沒有這條規則
	isVegetarian := containsRestriction(restrictions, "vegetarian") || isVegan
	isGlutenFree := containsRestriction(restrictions, "gluten-free")
	isDairyFree := containsRestriction(restrictions, "dairy-free") || isVegan

	// 組合食譜名稱
	baseName := fmt.Sprintf("%s %s", cuisine, mealType)
	if isVegetarian {
		baseName = "Vegetarian " + baseName
	}
	if isGlutenFree {
		baseName = "Gluten-Free " + baseName
	}

	name := baseName + " Dish"
	if strings.EqualFold(mealType, "Lunch") {
		name = baseName + " Bowl"
	}

	// 持有食材取前五個，沒有就用基本食材
	ingredients := make([]string, 0, 7)
	if len(owned) > 0 {
		limit := len(owned)
		if limit > 5 {
			limit = 5
		}
		ingredients = append(ingredients, owned[:limit]...)
	} else {
		ingredients = append(ingredients, defaultPantry...)
	}

	// 加入最多兩個菜系風味食材
	if flavors, ok := cuisineIngredients[cuisine]; ok {
		limit := len(flavors)
		if limit > 2 {
			limit = 2
		}
		ingredients = append(ingredients, flavors[:limit]...)
	}

	ingredients = dedupe(ingredients)

	prepTime, cookTime := difficultyTimes(difficulty)

	steps := make([]string, len(genericSteps))
	copy(steps, genericSteps)

	tags := make([]string, 0, len(restrictions)+1)
	tags = append(tags, restrictions...)
	tags = append(tags, "ai-generated")

	return recipe.Recipe{
		ID:          recipe.GeneratedRecipeID,
		Name:        name,
		Cuisine:     cuisine,
		MealType:    mealType,
		Difficulty:  difficulty,
		PrepTime:    prepTime,
		CookTime:    cookTime,
		Servings:    4,
		Ingredients: ingredients,
		Steps:       steps,
		DietaryInfo: recipe.DietaryInfo{
			Vegetarian: isVegetarian,
			Vegan:      isVegan,
			GlutenFree: isGlutenFree,
			DairyFree:  isDairyFree,
			NutFree:    true,
			LowCarb:    containsRestriction(restrictions, "low-carb"),
			Keto:       containsRestriction(restrictions, "keto"),
		},
		Tags:        tags,
		AIGenerated: true,
	}
}

// AdaptRecipe 依替換表與持有食材改編食譜，回傳新的食譜值
func (g *FallbackGenerator) AdaptRecipe(ctx context.Context, r recipe.Recipe, owned []string, substitutions map[string]string) recipe.Recipe {
	adapted := r.Clone()

	// 先套用替換表（完全比對，不分大小寫）
	for i, ing := range adapted.Ingredients {
		for oldIng, newIng := range substitutions {
			if strings.EqualFold(ing, oldIng) {
				adapted.Ingredients[i] = newIng
				break
			}
		}
	}

	// 剩下不在持有清單內的食材，用第一個持有食材粗略填補
	if len(owned) > 0 {
		for i, ing := range adapted.Ingredients {
			available := false
			for _, o := range owned {
				if strings.EqualFold(ing, o) {
					available = true
					break
				}
			}
			if !available {
				adapted.Ingredients[i] = owned[0]
			}
		}
	}

	adapted.Name = adapted.Name + " (Adapted)"
	adapted.AIGenerated = true

	return adapted
}

// CookingTips 產生通用烹飪技巧
func (g *FallbackGenerator) CookingTips(ctx context.Context, r recipe.Recipe) []string {
	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = recipe.DifficultyEasy
	}

	tips := []string{
		"Always prep your ingredients before you start cooking (mise en place).",
		fmt.Sprintf("For %s recipes, read through all steps before beginning.", strings.ToLower(difficulty)),
		"Taste and adjust seasoning as you cook, not just at the end.",
	}

	if strings.EqualFold(r.MealType, "Breakfast") {
		tips = append(tips, "Prep can be done the night before to save morning time.")
	} else if strings.EqualFold(r.MealType, "Dinner") {
		tips = append(tips, "Let proteins rest for a few minutes after cooking for better juiciness.")
	}

	return tips
}

// difficultyTimes 難度對應的準備與烹調時間（分鐘）
func difficultyTimes(difficulty string) (int, int) {
	switch {
	case strings.EqualFold(difficulty, recipe.DifficultyEasy):
		return 10, 15
	case strings.EqualFold(difficulty, recipe.DifficultyMedium):
		return 15, 25
	default:
		return 20, 35
	}
}

// containsRestriction 檢查限制清單是否包含指定標籤（不分大小寫）
func containsRestriction(restrictions []string, label string) bool {
	for _, r := range restrictions {
		if strings.EqualFold(strings.TrimSpace(r), label) {
			return true
		}
	}
	return false
}

// dedupe 去除重複食材，保留首次出現的順序
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

var _ Generator = (*FallbackGenerator)(nil)
