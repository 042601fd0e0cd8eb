package ai

import (
	"context"
	"errors"
	"testing"

	"recipe-assistant/internal/core/ai/openrouter"
	"recipe-assistant/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	response string
	err      error
	calls    int
	prompts  []string
	opts     []openrouter.GenerateOptions
}

func (s *stubModel) GenerateText(ctx context.Context, prompt string, opts openrouter.GenerateOptions) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.opts = append(s.opts, opts)
	return s.response, s.err
}

type mapCache struct {
	entries map[string]string
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Get(ctx context.Context, prompt string) (string, error) {
	if v, ok := c.entries[prompt]; ok {
		c.hits++
		return v, nil
	}
	return "", errors.New("cache miss")
}

func (c *mapCache) Set(ctx context.Context, prompt, value string) error {
	c.entries[prompt] = value
	return nil
}

func (c *mapCache) Close() error { return nil }

const validRecipeJSON = `{
	"name": "Lemon Garlic Pasta",
	"cuisine": "Italian",
	"meal_type": "Dinner",
	"difficulty": "Easy",
	"prep_time": 10,
	"cook_time": 15,
	"servings": 2,
	"ingredients": ["pasta", "lemon", "garlic"],
	"steps": ["Boil pasta.", "Toss with lemon and garlic."],
	"dietary_info": {"vegetarian": true, "vegan": false, "gluten_free": false,
		"dairy_free": true, "nut_free": true, "low_carb": false, "keto": false},
	"tags": ["pasta"],
	"ai_generated": true
}`

func TestLiveGenerateRecipe(t *testing.T) {
	ctx := context.Background()
	prefs := recipe.Preferences{Cuisine: "Italian", MealType: "Dinner", Difficulty: "Easy"}

	t.Run("parses model output and stamps provenance", func(t *testing.T) {
		model := &stubModel{response: "Here you go:\n" + validRecipeJSON}
		gen := NewLiveGenerator(model, nil)

		r := gen.GenerateRecipe(ctx, prefs, nil, []string{"pasta", "lemon"})

		assert.Equal(t, "Lemon Garlic Pasta", r.Name)
		assert.Equal(t, recipe.GeneratedRecipeID, r.ID)
		assert.True(t, r.AIGenerated)
		assert.Equal(t, 1, model.calls)

		require.Len(t, model.opts, 1)
		assert.InDelta(t, 0.8, model.opts[0].Temperature, 1e-9)
		assert.Equal(t, 2000, model.opts[0].MaxTokens)
	})

	t.Run("prompt carries preferences and ingredients", func(t *testing.T) {
		model := &stubModel{response: validRecipeJSON}
		gen := NewLiveGenerator(model, nil)

		gen.GenerateRecipe(ctx, prefs, []string{"vegetarian"}, []string{"pasta", "lemon"})

		require.Len(t, model.prompts, 1)
		prompt := model.prompts[0]
		assert.Contains(t, prompt, "Italian")
		assert.Contains(t, prompt, "vegetarian")
		assert.Contains(t, prompt, "pasta, lemon")
	})

	t.Run("model error falls back", func(t *testing.T) {
		model := &stubModel{err: errors.New("quota exceeded")}
		gen := NewLiveGenerator(model, nil)

		r := gen.GenerateRecipe(ctx, prefs, nil, nil)
		want := NewFallbackGenerator().GenerateRecipe(ctx, prefs, nil, nil)

		assert.Equal(t, want, r)
	})

	t.Run("unextractable response falls back", func(t *testing.T) {
		model := &stubModel{response: "Sorry, I cannot help with that."}
		gen := NewLiveGenerator(model, nil)

		r := gen.GenerateRecipe(ctx, prefs, nil, nil)
		want := NewFallbackGenerator().GenerateRecipe(ctx, prefs, nil, nil)

		assert.Equal(t, want, r)
	})

	t.Run("missing fields are normalized", func(t *testing.T) {
		model := &stubModel{response: `{"name": "Mystery Dish"}`}
		gen := NewLiveGenerator(model, nil)

		r := gen.GenerateRecipe(ctx, prefs, nil, nil)

		assert.Equal(t, "Mystery Dish", r.Name)
		assert.NotNil(t, r.Ingredients)
		assert.NotNil(t, r.Steps)
		assert.NotNil(t, r.Tags)
		assert.Equal(t, 4, r.Servings)
	})

	t.Run("cache avoids repeat model calls", func(t *testing.T) {
		model := &stubModel{response: validRecipeJSON}
		store := newMapCache()
		gen := NewLiveGenerator(model, store)

		gen.GenerateRecipe(ctx, prefs, nil, nil)
		gen.GenerateRecipe(ctx, prefs, nil, nil)

		assert.Equal(t, 1, model.calls)
		assert.Equal(t, 1, store.hits)
	})
}

func TestLiveAdaptRecipe(t *testing.T) {
	ctx := context.Background()
	original := recipe.Recipe{
		ID:          3,
		Name:        "Teriyaki Salmon Bowl",
		Cuisine:     "Japanese",
		Ingredients: []string{"salmon fillet", "rice"},
	}

	t.Run("keeps original id", func(t *testing.T) {
		model := &stubModel{response: validRecipeJSON}
		gen := NewLiveGenerator(model, nil)

		adapted := gen.AdaptRecipe(ctx, original, []string{"tofu"}, map[string]string{"salmon fillet": "tofu"})

		assert.Equal(t, 3, adapted.ID)
		assert.True(t, adapted.AIGenerated)

		require.Len(t, model.opts, 1)
		assert.InDelta(t, 0.7, model.opts[0].Temperature, 1e-9)
		assert.Equal(t, 2000, model.opts[0].MaxTokens)
		assert.Contains(t, model.prompts[0], "salmon fillet -> tofu")
	})

	t.Run("failure falls back to template adaptation", func(t *testing.T) {
		model := &stubModel{err: errors.New("connection refused")}
		gen := NewLiveGenerator(model, nil)

		adapted := gen.AdaptRecipe(ctx, original, []string{"tofu"}, nil)
		want := NewFallbackGenerator().AdaptRecipe(ctx, original, []string{"tofu"}, nil)

		assert.Equal(t, want, adapted)
		assert.Contains(t, adapted.Name, "(Adapted)")
	})
}

func TestLiveCookingTips(t *testing.T) {
	ctx := context.Background()
	r := recipe.Recipe{Name: "Chana Masala", Cuisine: "Indian", MealType: "Dinner", Difficulty: "Medium", CookTime: 30}

	t.Run("parses tip array", func(t *testing.T) {
		model := &stubModel{response: `Tips below: ["Soak the chickpeas overnight.", "Toast the spices."]`}
		gen := NewLiveGenerator(model, nil)

		tips := gen.CookingTips(ctx, r)

		assert.Equal(t, []string{"Soak the chickpeas overnight.", "Toast the spices."}, tips)
		require.Len(t, model.opts, 1)
		assert.InDelta(t, 0.7, model.opts[0].Temperature, 1e-9)
		assert.Equal(t, 800, model.opts[0].MaxTokens)
	})

	t.Run("empty array falls back", func(t *testing.T) {
		model := &stubModel{response: `[]`}
		gen := NewLiveGenerator(model, nil)

		tips := gen.CookingTips(ctx, r)
		want := NewFallbackGenerator().CookingTips(ctx, r)

		assert.Equal(t, want, tips)
	})

	t.Run("prose response falls back", func(t *testing.T) {
		model := &stubModel{response: "Just cook it with love."}
		gen := NewLiveGenerator(model, nil)

		tips := gen.CookingTips(ctx, r)
		want := NewFallbackGenerator().CookingTips(ctx, r)

		assert.Equal(t, want, tips)
	})
}
