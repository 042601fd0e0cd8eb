package recipe

import (
	"sort"
	"strings"
)

// 綜合分數權重
const (
	ingredientWeight = 0.6
	preferenceWeight = 0.4

	cuisineMismatchFactor    = 0.7
	mealTypeMismatchFactor   = 0.7
	difficultyMismatchFactor = 0.8
)

// Rank 依偏好、飲食限制與持有食材為語料庫排序。
// 不滿足飲食限制的食譜整筆排除；其餘依綜合分數由高到低穩定排序，
// 同分食譜保留語料庫原始順序。輸入語料庫不會被修改。
func Rank(corpus []Recipe, prefs Preferences, restrictions []string, owned []string) []ScoredCandidate {
	ranked := make([]ScoredCandidate, 0, len(corpus))

	for _, r := range corpus {
		// 飲食限制是硬條件
		if !MatchesDietary(r, restrictions) {
			continue
		}

		ingredientMatch := IngredientMatchScore(r, owned)

		// 偏好是軟條件，不匹配只做扣分。
		// cuisine / meal_type 用子字串比對，difficulty 用完全比對（刻意的不對稱）。
		preferenceMatch := 1.0
		if prefs.Cuisine != "" && !strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(prefs.Cuisine)) {
			preferenceMatch *= cuisineMismatchFactor
		}
		if prefs.MealType != "" && !strings.Contains(strings.ToLower(r.MealType), strings.ToLower(prefs.MealType)) {
			preferenceMatch *= mealTypeMismatchFactor
		}
		if prefs.Difficulty != "" && !strings.EqualFold(r.Difficulty, prefs.Difficulty) {
			preferenceMatch *= difficultyMismatchFactor
		}

		score := ingredientMatch*ingredientWeight + preferenceMatch*preferenceWeight

		ranked = append(ranked, ScoredCandidate{
			Recipe:          r,
			Score:           score,
			IngredientMatch: ingredientMatch,
			PreferenceMatch: preferenceMatch,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
