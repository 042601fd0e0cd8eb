package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"recipe-assistant/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file yields empty corpus", func(t *testing.T) {
		store := NewCorpusStore(filepath.Join(t.TempDir(), "missing.json"))

		recipes, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "recipes.json")
		store := NewCorpusStore(path)

		in := []recipe.Recipe{
			{
				ID:          1,
				Name:        "Crêpes with Berries",
				Cuisine:     "French",
				MealType:    "Breakfast",
				Difficulty:  "Medium",
				Ingredients: []string{"flour", "crème fraîche"},
				Steps:       []string{"Mix & rest the batter."},
				DietaryInfo: recipe.DietaryInfo{Vegetarian: true},
				Tags:        []string{"vegetarian"},
			},
		}
		require.NoError(t, store.Save(ctx, in))

		out, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("non-ascii text survives unescaped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recipes.json")
		store := NewCorpusStore(path)

		require.NoError(t, store.Save(ctx, []recipe.Recipe{
			{ID: 2, Name: "Crêpes", Ingredients: []string{"jalapeño", "crème fraîche"}},
		}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "jalapeño")
		assert.Contains(t, string(data), "Crêpes")
		assert.NotContains(t, string(data), `\u`)
	})

	t.Run("malformed file reports error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recipes.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

		store := NewCorpusStore(path)
		_, err := store.Load(ctx)
		assert.Error(t, err)
	})
}
