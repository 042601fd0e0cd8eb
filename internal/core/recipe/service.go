package recipe

import (
	"context"

	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// CorpusLoader 語料庫讀取介面，由外部儲存協作者實作
type CorpusLoader interface {
	Load(ctx context.Context) ([]Recipe, error)
}

// CandidateGenerator 候選食譜生成介面，由 AI 生成器實作。
// 生成操作是全函數，永遠回傳可用的食譜，不會失敗。
type CandidateGenerator interface {
	GenerateRecipe(ctx context.Context, prefs Preferences, restrictions []string, owned []string) Recipe
}

// RecommendRequest 推薦請求
type RecommendRequest struct {
	Preferences          Preferences `json:"preferences"`
	DietaryRestrictions  []string    `json:"dietary_restrictions"`
	AvailableIngredients []string    `json:"available_ingredients"`
	UseAIGeneration      bool        `json:"use_ai_generation"`
}

// RecommendResult 推薦結果
type RecommendResult struct {
	Candidates          []ScoredCandidate
	TotalMatches        int
	AIGeneratedIncluded bool
}

// Service 食譜推薦服務
type Service struct {
	corpus    CorpusLoader
	generator CandidateGenerator
	topK      int
}

// NewService 創建食譜推薦服務
func NewService(corpus CorpusLoader, generator CandidateGenerator, topK int) *Service {
	if topK <= 0 {
		topK = 10
	}
	return &Service{
		corpus:    corpus,
		generator: generator,
		topK:      topK,
	}
}

// Recommend 執行一次推薦。
// 語料庫每次呼叫重新讀取；生成的候選食譜只附加在本次呼叫的副本上，
// 不會寫回儲存，也不會被其他呼叫者看到。
func (s *Service) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResult, error) {
	corpus, err := s.corpus.Load(ctx)
	if err != nil {
		return nil, err
	}

	aiIncluded := false
	if req.UseAIGeneration && len(req.AvailableIngredients) > 0 && s.generator != nil {
		generated := s.generator.GenerateRecipe(ctx, req.Preferences, req.DietaryRestrictions, req.AvailableIngredients)
		corpus = append(corpus, generated)
		aiIncluded = true

		common.LogInfo("已加入 AI 生成的候選食譜",
			zap.String("name", generated.Name),
			zap.Int("corpus_size", len(corpus)),
		)
	}

	ranked := Rank(corpus, req.Preferences, req.DietaryRestrictions, req.AvailableIngredients)

	top := ranked
	if len(top) > s.topK {
		top = top[:s.topK]
	}

	common.LogInfo("食譜推薦完成",
		zap.Int("total_matches", len(ranked)),
		zap.Int("returned", len(top)),
		zap.Bool("ai_generated_included", aiIncluded),
	)

	return &RecommendResult{
		Candidates:          top,
		TotalMatches:        len(ranked),
		AIGeneratedIncluded: aiIncluded,
	}, nil
}
