package recipe

// GeneratedRecipeID 生成食譜的保留 ID。
// 生成結果不會寫回語料庫，因此這個固定值不會進入 ID 查詢空間。
const GeneratedRecipeID = 9999

// 難度等級
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// DietaryInfo 食譜的七個固定飲食標記
type DietaryInfo struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"gluten_free"`
	DairyFree  bool `json:"dairy_free"`
	NutFree    bool `json:"nut_free"`
	LowCarb    bool `json:"low_carb"`
	Keto       bool `json:"keto"`
}

// Flag 依限制標籤查詢對應的飲食標記。
// 第二個回傳值表示標籤是否屬於固定詞彙表；不認識的標籤一律視為通過。
// 注意：vegan=true 不會隱含 vegetarian，這是語料庫的既有慣例。
func (d DietaryInfo) Flag(label string) (value bool, recognized bool) {
	switch label {
	case "vegetarian":
		return d.Vegetarian, true
	case "vegan":
		return d.Vegan, true
	case "gluten-free":
		return d.GlutenFree, true
	case "dairy-free":
		return d.DairyFree, true
	case "nut-free":
		return d.NutFree, true
	case "low-carb":
		return d.LowCarb, true
	case "keto":
		return d.Keto, true
	default:
		return false, false
	}
}

// Recipe 食譜
type Recipe struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Cuisine     string      `json:"cuisine"`
	MealType    string      `json:"meal_type"`
	Difficulty  string      `json:"difficulty"`
	PrepTime    int         `json:"prep_time"`
	CookTime    int         `json:"cook_time"`
	Servings    int         `json:"servings"`
	Ingredients []string    `json:"ingredients"`
	Steps       []string    `json:"steps"`
	DietaryInfo DietaryInfo `json:"dietary_info"`
	Tags        []string    `json:"tags"`
	AIGenerated bool        `json:"ai_generated"`
}

// Clone 深拷貝食譜。排序與調整都在副本上進行，原始食譜不可變。
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = append([]string(nil), r.Ingredients...)
	out.Steps = append([]string(nil), r.Steps...)
	out.Tags = append([]string(nil), r.Tags...)
	return out
}

// Preferences 使用者偏好。空字串表示不設限，而不是「空字串條件」。
type Preferences struct {
	Cuisine    string `json:"cuisine,omitempty"`
	MealType   string `json:"meal_type,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// ScoredCandidate 排序結果，僅在單次排序呼叫內存活
type ScoredCandidate struct {
	Recipe          Recipe  `json:"recipe"`
	Score           float64 `json:"score"`
	IngredientMatch float64 `json:"ingredient_match"`
	PreferenceMatch float64 `json:"preference_match"`
}

// FindByID 以 ID 查詢語料庫中的食譜
func FindByID(corpus []Recipe, id int) (Recipe, bool) {
	for _, r := range corpus {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}
