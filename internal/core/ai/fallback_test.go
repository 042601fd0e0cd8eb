package ai

import (
	"context"
	"testing"

	"recipe-assistant/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackGenerateRecipe(t *testing.T) {
	gen := NewFallbackGenerator()
	ctx := context.Background()

	t.Run("italian lunch easy", func(t *testing.T) {
		r := gen.GenerateRecipe(ctx, recipe.Preferences{
			Cuisine:    "Italian",
			MealType:   "Lunch",
			Difficulty: "Easy",
		}, nil, nil)

		assert.Contains(t, r.Name, "Italian")
		assert.Contains(t, r.Name, "Lunch")
		assert.Contains(t, r.Name, "Bowl")
		assert.Equal(t, 10, r.PrepTime)
		assert.Equal(t, 15, r.CookTime)
		assert.Equal(t, 4, r.Servings)
		assert.Equal(t, recipe.GeneratedRecipeID, r.ID)
		assert.True(t, r.AIGenerated)

		// 菜系風味食材來自固定查表
		flavored := false
		for _, ing := range r.Ingredients {
			if ing == "tomatoes" || ing == "basil" || ing == "parmesan cheese" {
				flavored = true
			}
		}
		assert.True(t, flavored, "expected an Italian flavor ingredient")
	})

	t.Run("empty preferences use defaults", func(t *testing.T) {
		r := gen.GenerateRecipe(ctx, recipe.Preferences{}, nil, nil)

		assert.Equal(t, "International", r.Cuisine)
		assert.Equal(t, "Dinner", r.MealType)
		assert.Equal(t, "Easy", r.Difficulty)
		assert.Contains(t, r.Name, "Dish")
		assert.ElementsMatch(t, []string{"olive oil", "garlic", "salt", "pepper"}, r.Ingredients)
	})

	t.Run("difficulty time tiers", func(t *testing.T) {
		medium := gen.GenerateRecipe(ctx, recipe.Preferences{Difficulty: "Medium"}, nil, nil)
		assert.Equal(t, 15, medium.PrepTime)
		assert.Equal(t, 25, medium.CookTime)

		hard := gen.GenerateRecipe(ctx, recipe.Preferences{Difficulty: "hard"}, nil, nil)
		assert.Equal(t, 20, hard.PrepTime)
		assert.Equal(t, 35, hard.CookTime)
	})

	t.Run("owned ingredients capped at five", func(t *testing.T) {
		owned := []string{"a", "b", "c", "d", "e", "f", "g"}
		r := gen.GenerateRecipe(ctx, recipe.Preferences{}, nil, owned)
		assert.Len(t, r.Ingredients, 5)
		assert.NotContains(t, r.Ingredients, "f")
	})

	t.Run("ingredients are deduplicated", func(t *testing.T) {
		r := gen.GenerateRecipe(ctx, recipe.Preferences{Cuisine: "Italian"}, nil,
			[]string{"tomatoes", "Tomatoes", "basil"})
		seen := map[string]int{}
		for _, ing := range r.Ingredients {
			seen[ing]++
			assert.Equal(t, 1, seen[ing], "duplicate ingredient %q", ing)
		}
	})

	t.Run("dietary prefixes in name", func(t *testing.T) {
		r := gen.GenerateRecipe(ctx, recipe.Preferences{Cuisine: "Indian"},
			[]string{"vegetarian", "gluten-free"}, nil)
		assert.Contains(t, r.Name, "Vegetarian")
		assert.Contains(t, r.Name, "Gluten-Free")
	})

	t.Run("vegan implies vegetarian and dairy free when producing", func(t *testing.T) {
		r := gen.GenerateRecipe(ctx, recipe.Preferences{}, []string{"vegan"}, nil)
		assert.True(t, r.DietaryInfo.Vegan)
		assert.True(t, r.DietaryInfo.Vegetarian)
		assert.True(t, r.DietaryInfo.DairyFree)
		assert.True(t, r.DietaryInfo.NutFree)
		assert.Contains(t, r.Name, "Vegetarian")
	})

	t.Run("tags carry restrictions plus provenance", func(t *testing.T) {
		r := gen.GenerateRecipe(ctx, recipe.Preferences{}, []string{"keto", "nut-free"}, nil)
		assert.Equal(t, []string{"keto", "nut-free", "ai-generated"}, r.Tags)
		assert.True(t, r.DietaryInfo.Keto)
	})

	t.Run("six fixed steps", func(t *testing.T) {
		a := gen.GenerateRecipe(ctx, recipe.Preferences{Cuisine: "Mexican"}, nil, nil)
		b := gen.GenerateRecipe(ctx, recipe.Preferences{Cuisine: "Japanese", Difficulty: "Hard"}, nil, nil)
		require.Len(t, a.Steps, 6)
		assert.Equal(t, a.Steps, b.Steps)
	})

	t.Run("deterministic", func(t *testing.T) {
		prefs := recipe.Preferences{Cuisine: "Mediterranean", MealType: "Lunch", Difficulty: "Medium"}
		a := gen.GenerateRecipe(ctx, prefs, []string{"vegan"}, []string{"lentils"})
		b := gen.GenerateRecipe(ctx, prefs, []string{"vegan"}, []string{"lentils"})
		assert.Equal(t, a, b)
	})
}

func TestFallbackAdaptRecipe(t *testing.T) {
	gen := NewFallbackGenerator()
	ctx := context.Background()

	original := recipe.Recipe{
		ID:          7,
		Name:        "Pancakes",
		Cuisine:     "American",
		MealType:    "Breakfast",
		Difficulty:  "Easy",
		PrepTime:    10,
		CookTime:    10,
		Servings:    2,
		Ingredients: []string{"flour", "milk", "eggs"},
		Steps:       []string{"Mix", "Fry"},
		Tags:        []string{"breakfast"},
	}

	t.Run("substitutions apply case-insensitively", func(t *testing.T) {
		adapted := gen.AdaptRecipe(ctx, original, []string{"oat milk", "flour", "eggs"},
			map[string]string{"Milk": "oat milk"})

		assert.Equal(t, []string{"flour", "oat milk", "eggs"}, adapted.Ingredients)
		assert.Equal(t, "Pancakes (Adapted)", adapted.Name)
		assert.True(t, adapted.AIGenerated)
	})

	t.Run("unavailable ingredients fill with first owned", func(t *testing.T) {
		adapted := gen.AdaptRecipe(ctx, original, []string{"butter", "eggs"}, nil)
		assert.Equal(t, []string{"butter", "butter", "eggs"}, adapted.Ingredients)
	})

	t.Run("no owned ingredients leaves list unchanged", func(t *testing.T) {
		adapted := gen.AdaptRecipe(ctx, original, nil, nil)
		assert.Equal(t, []string{"flour", "milk", "eggs"}, adapted.Ingredients)
	})

	t.Run("other fields are retained and input not mutated", func(t *testing.T) {
		adapted := gen.AdaptRecipe(ctx, original, []string{"rice"}, nil)

		assert.Equal(t, original.ID, adapted.ID)
		assert.Equal(t, original.Cuisine, adapted.Cuisine)
		assert.Equal(t, original.MealType, adapted.MealType)
		assert.Equal(t, original.Difficulty, adapted.Difficulty)
		assert.Equal(t, original.PrepTime, adapted.PrepTime)
		assert.Equal(t, original.CookTime, adapted.CookTime)
		assert.Equal(t, original.Servings, adapted.Servings)
		assert.Equal(t, original.Steps, adapted.Steps)
		assert.Equal(t, original.Tags, adapted.Tags)

		assert.Equal(t, "Pancakes", original.Name)
		assert.Equal(t, []string{"flour", "milk", "eggs"}, original.Ingredients)
		assert.False(t, original.AIGenerated)
	})
}

func TestFallbackCookingTips(t *testing.T) {
	gen := NewFallbackGenerator()
	ctx := context.Background()

	t.Run("breakfast gets prep ahead tip", func(t *testing.T) {
		tips := gen.CookingTips(ctx, recipe.Recipe{MealType: "Breakfast", Difficulty: "Easy"})
		require.Len(t, tips, 4)
		assert.Contains(t, tips[3], "night before")
	})

	t.Run("dinner gets resting tip", func(t *testing.T) {
		tips := gen.CookingTips(ctx, recipe.Recipe{MealType: "Dinner", Difficulty: "Hard"})
		require.Len(t, tips, 4)
		assert.Contains(t, tips[3], "rest")
		assert.Contains(t, tips[1], "hard")
	})

	t.Run("lunch gets no extra tip", func(t *testing.T) {
		tips := gen.CookingTips(ctx, recipe.Recipe{MealType: "Lunch", Difficulty: "Medium"})
		assert.Len(t, tips, 3)
	})
}
