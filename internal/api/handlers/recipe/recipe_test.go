package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"recipe-assistant/internal/core/ai"
	recipeService "recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/infrastructure/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	corpus := storage.NewCorpusStore(filepath.Join(t.TempDir(), "recipes.json"))
	require.NoError(t, corpus.Save(context.Background(), []recipeService.Recipe{
		{
			ID: 1, Name: "Chana Masala", Cuisine: "Indian", MealType: "Dinner", Difficulty: "Medium",
			Ingredients: []string{"chickpeas", "onion", "tomatoes"},
			DietaryInfo: recipeService.DietaryInfo{Vegetarian: true, Vegan: true},
			Tags:        []string{"vegan"},
		},
		{
			ID: 2, Name: "Teriyaki Salmon Bowl", Cuisine: "Japanese", MealType: "Lunch", Difficulty: "Easy",
			Ingredients: []string{"salmon fillet", "rice"},
		},
	}))

	cfg := &config.Config{}
	generator := ai.NewFallbackGenerator()
	svc := recipeService.NewService(corpus, generator, 10)
	handler := NewHandler(svc, corpus, generator, cfg)

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/recipes", handler.HandleListRecipes)
	api.GET("/recipes/:id", handler.HandleGetRecipe)
	api.POST("/recommend", handler.HandleRecommend)
	api.POST("/generate", handler.HandleGenerate)
	api.POST("/adapt/:id", handler.HandleAdapt)
	api.GET("/tips/:id", handler.HandleTips)
	api.GET("/ai-status", handler.HandleAIStatus)

	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleListAndGet(t *testing.T) {
	router := newTestRouter(t)

	t.Run("list returns whole corpus", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/recipes", "")
		require.Equal(t, http.StatusOK, w.Code)

		var recipes []recipeService.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
		assert.Len(t, recipes, 2)
	})

	t.Run("get by id", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/recipes/2", "")
		require.Equal(t, http.StatusOK, w.Code)

		var r recipeService.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
		assert.Equal(t, "Teriyaki Salmon Bowl", r.Name)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/recipes/42", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/recipes/pasta", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleRecommend(t *testing.T) {
	router := newTestRouter(t)

	t.Run("filters by dietary restriction", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/recommend",
			`{"dietary_restrictions": ["vegan"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp RecommendResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.TotalMatches)
		require.Len(t, resp.Recipes, 1)
		assert.Equal(t, "Chana Masala", resp.Recipes[0].Recipe.Name)
		assert.False(t, resp.AIGeneratedIncluded)
	})

	t.Run("ai generation adds a candidate", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/recommend",
			`{"available_ingredients": ["rice"], "use_ai_generation": true}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp RecommendResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.AIGeneratedIncluded)
		assert.Equal(t, 3, resp.TotalMatches)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/recommend", `{"preferences": 7}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGenerateAdaptTips(t *testing.T) {
	router := newTestRouter(t)

	t.Run("generate", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/generate",
			`{"preferences": {"cuisine": "Italian", "meal_type": "Lunch", "difficulty": "Easy"}}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp RecipeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Recipe.Name, "Italian")
		assert.True(t, resp.Recipe.AIGenerated)
	})

	t.Run("adapt existing recipe", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/adapt/2",
			`{"available_ingredients": ["tofu", "rice"], "substitutions": {"salmon fillet": "tofu"}}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp RecipeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Teriyaki Salmon Bowl (Adapted)", resp.Recipe.Name)
		assert.Contains(t, resp.Recipe.Ingredients, "tofu")
	})

	t.Run("adapt unknown recipe is 404", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/adapt/42", `{}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("tips", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/tips/1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Tips    []string `json:"tips"`
			Success bool     `json:"success"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Tips)
	})

	t.Run("ai status reports fallback", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/ai-status", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			HasLiveModel bool   `json:"has_live_model"`
			AIAvailable  bool   `json:"ai_available"`
			Message      string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.HasLiveModel)
		assert.True(t, resp.AIAvailable)
	})
}
