package recipe

import (
	"net/http"
	"strconv"

	"recipe-assistant/internal/core/ai"
	recipeService "recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateRequest 生成食譜請求
type GenerateRequest struct {
	Preferences          recipeService.Preferences `json:"preferences"`
	DietaryRestrictions  []string                  `json:"dietary_restrictions"`
	AvailableIngredients []string                  `json:"available_ingredients"`
}

// AdaptRequest 改編食譜請求
type AdaptRequest struct {
	AvailableIngredients []string          `json:"available_ingredients"`
	Substitutions        map[string]string `json:"substitutions"`
}

// RecipeResponse 單一食譜操作響應
type RecipeResponse struct {
	Recipe  recipeService.Recipe `json:"recipe"`
	Success bool                 `json:"success"`
	Message string               `json:"message"`
}

// RecommendResponse 推薦響應
type RecommendResponse struct {
	Recipes             []recipeService.ScoredCandidate `json:"recipes"`
	TotalMatches        int                             `json:"total_matches"`
	AIGeneratedIncluded bool                            `json:"ai_generated_included"`
}

// Handler 食譜處理程序
type Handler struct {
	service   *recipeService.Service
	corpus    recipeService.CorpusLoader
	generator ai.Generator
	config    *config.Config
}

// NewHandler 創建食譜處理程序
func NewHandler(service *recipeService.Service, corpus recipeService.CorpusLoader, generator ai.Generator, cfg *config.Config) *Handler {
	return &Handler{
		service:   service,
		corpus:    corpus,
		generator: generator,
		config:    cfg,
	}
}

// requestID 取得或生成請求 ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Header("X-Request-ID", id)
	}
	return id
}

// HandleListRecipes 列出全部食譜
func (h *Handler) HandleListRecipes(c *gin.Context) {
	recipes, err := h.corpus.Load(c.Request.Context())
	if err != nil {
		common.LogError("語料庫讀取失敗",
			zap.Error(err),
			zap.String("request_id", requestID(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipes"})
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// HandleGetRecipe 取得單一食譜
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return
	}

	recipes, err := h.corpus.Load(c.Request.Context())
	if err != nil {
		common.LogError("語料庫讀取失敗",
			zap.Error(err),
			zap.String("request_id", requestID(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipes"})
		return
	}

	r, ok := recipeService.FindByID(recipes, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, r)
}

// HandleRecommend 推薦食譜
func (h *Handler) HandleRecommend(c *gin.Context) {
	reqID := requestID(c)

	common.LogInfo("開始處理食譜推薦請求",
		zap.String("request_id", reqID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req recipeService.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.service.Recommend(c.Request.Context(), req)
	if err != nil {
		common.LogError("食譜推薦失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation failed"})
		return
	}

	c.JSON(http.StatusOK, RecommendResponse{
		Recipes:             result.Candidates,
		TotalMatches:        result.TotalMatches,
		AIGeneratedIncluded: result.AIGeneratedIncluded,
	})
}

// HandleGenerate 生成新食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	reqID := requestID(c)

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", reqID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	generated := h.generator.GenerateRecipe(c.Request.Context(), req.Preferences, req.DietaryRestrictions, req.AvailableIngredients)

	c.JSON(http.StatusOK, RecipeResponse{
		Recipe:  generated,
		Success: true,
		Message: "Recipe generated successfully!",
	})
}

// HandleAdapt 改編既有食譜
func (h *Handler) HandleAdapt(c *gin.Context) {
	reqID := requestID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return
	}

	recipes, err := h.corpus.Load(c.Request.Context())
	if err != nil {
		common.LogError("語料庫讀取失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipes"})
		return
	}

	r, ok := recipeService.FindByID(recipes, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var req AdaptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	adapted := h.generator.AdaptRecipe(c.Request.Context(), r, req.AvailableIngredients, req.Substitutions)

	c.JSON(http.StatusOK, RecipeResponse{
		Recipe:  adapted,
		Success: true,
		Message: "Recipe adapted successfully!",
	})
}

// HandleTips 取得烹飪技巧
func (h *Handler) HandleTips(c *gin.Context) {
	reqID := requestID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return
	}

	recipes, err := h.corpus.Load(c.Request.Context())
	if err != nil {
		common.LogError("語料庫讀取失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipes"})
		return
	}

	r, ok := recipeService.FindByID(recipes, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	tips := h.generator.CookingTips(c.Request.Context(), r)

	c.JSON(http.StatusOK, gin.H{
		"tips":    tips,
		"success": true,
	})
}

// HandleAIStatus 查詢 AI 服務狀態
func (h *Handler) HandleAIStatus(c *gin.Context) {
	hasLive := h.config.OpenRouter.Enabled && h.config.OpenRouter.APIKey != ""

	message := "Using fallback template generator"
	if hasLive {
		message = "OpenRouter API enabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"has_live_model": hasLive,
		"ai_available":   true,
		"message":        message,
	})
}
