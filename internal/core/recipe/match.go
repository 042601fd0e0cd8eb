package recipe

import "strings"

// MatchesDietary 檢查食譜是否滿足所有飲食限制。
// 每個限制可由 dietary_info 的布林值或 tags 中的同名標籤擇一滿足；
// 不在固定詞彙表內的限制直接略過。空限制集永遠通過。
func MatchesDietary(r Recipe, restrictions []string) bool {
	if len(restrictions) == 0 {
		return true
	}

	for _, restriction := range restrictions {
		label := strings.ToLower(strings.TrimSpace(restriction))

		flag, recognized := r.DietaryInfo.Flag(label)
		if !recognized {
			continue
		}
		if !flag && !hasTag(r.Tags, label) {
			return false
		}
	}

	return true
}

// hasTag 檢查標籤是否存在（不分大小寫）
func hasTag(tags []string, label string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, label) {
			return true
		}
	}
	return false
}

// IngredientMatchScore 計算持有食材對食譜食材清單的覆蓋率，範圍 [0,1]。
// 沒有提供持有食材時不做懲罰，直接回傳 1.0；食譜沒有任何食材時回傳 0.0。
// 食材比對採雙向子字串包含（"tomato" 可對上 "tomatoes"，反之亦然）。
func IngredientMatchScore(r Recipe, owned []string) float64 {
	if len(owned) == 0 {
		return 1.0
	}
	if len(r.Ingredients) == 0 {
		return 0.0
	}

	ownedLower := make([]string, len(owned))
	for i, ing := range owned {
		ownedLower[i] = strings.ToLower(ing)
	}

	matched := 0
	for _, ing := range r.Ingredients {
		ingLower := strings.ToLower(ing)
		for _, avail := range ownedLower {
			if strings.Contains(ingLower, avail) || strings.Contains(avail, ingLower) {
				matched++
				break
			}
		}
	}

	total := len(r.Ingredients)
	// 全部命中時強制回傳 1.0，避免浮點除法吃掉「完全匹配」語義
	if matched == total {
		return 1.0
	}
	return float64(matched) / float64(total)
}
