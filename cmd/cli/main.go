// 離線命令列工具，不經過 HTTP 伺服器直接操作食譜語料庫與生成器。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"recipe-assistant/internal/core/ai"
	"recipe-assistant/internal/core/ai/cache"
	"recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/infrastructure/storage"
	"recipe-assistant/internal/pkg/common"

	"github.com/joho/godotenv"
)

func main() {
	// .env 缺漏時沿用環境變數與預設值
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// CLI 輸出走 stdout，日誌壓到最低
	if err := common.InitLogger("error"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cacheStore, err := cache.NewStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize cache: %v\n", err)
		os.Exit(1)
	}
	if cacheStore != nil {
		defer cacheStore.Close()
	}

	corpus := storage.NewCorpusStore(cfg.Corpus.Path)
	generator := ai.NewGenerator(cfg, cacheStore)
	ctx := context.Background()

	switch os.Args[1] {
	case "recommend":
		runRecommend(ctx, corpus, generator, os.Args[2:])
	case "generate":
		runGenerate(ctx, generator, os.Args[2:])
	case "adapt":
		runAdapt(ctx, corpus, generator, os.Args[2:])
	case "tips":
		runTips(ctx, corpus, generator, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: recipe-cli <command> [flags]

Commands:
  recommend   Recommend recipes from the local corpus
  generate    Generate a new recipe using AI
  adapt       Adapt an existing recipe by ID using AI
  tips        Get AI cooking tips for a recipe by ID`)
}

// listFlag 逗號分隔的清單參數
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(value string) error {
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

func preferenceFlags(fs *flag.FlagSet) (*string, *string, *string) {
	cuisine := fs.String("cuisine", "", "Cuisine preference")
	meal := fs.String("meal", "", "Meal type (Breakfast/Lunch/Dinner)")
	difficulty := fs.String("difficulty", "", "Difficulty (Easy/Medium/Hard)")
	return cuisine, meal, difficulty
}

func runRecommend(ctx context.Context, corpus recipe.CorpusLoader, generator ai.Generator, args []string) {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	cuisine, meal, difficulty := preferenceFlags(fs)
	var diet, have listFlag
	fs.Var(&diet, "diet", "Dietary restrictions (comma separated, e.g. vegan,gluten-free)")
	fs.Var(&have, "have", "Available ingredients (comma separated)")
	top := fs.Int("top", 5, "How many recipes to show")
	useAI := fs.Bool("ai", false, "Include an AI-generated candidate")
	fs.Parse(args)

	topK := *top
	if topK < 1 {
		topK = 1
	}

	svc := recipe.NewService(corpus, generator, topK)
	result, err := svc.Recommend(ctx, recipe.RecommendRequest{
		Preferences: recipe.Preferences{
			Cuisine:    *cuisine,
			MealType:   *meal,
			Difficulty: *difficulty,
		},
		DietaryRestrictions:  diet,
		AvailableIngredients: have,
		UseAIGeneration:      *useAI,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Recommendation failed: %v\n", err)
		os.Exit(1)
	}

	if len(result.Candidates) == 0 {
		fmt.Println("No matching recipes found.")
		return
	}

	for _, candidate := range result.Candidates {
		printRecipe(candidate.Recipe)
	}
}

func runGenerate(ctx context.Context, generator ai.Generator, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cuisine, meal, difficulty := preferenceFlags(fs)
	var diet, have listFlag
	fs.Var(&diet, "diet", "Dietary restrictions (comma separated)")
	fs.Var(&have, "have", "Available ingredients (comma separated)")
	fs.Parse(args)

	prefs := recipe.Preferences{
		Cuisine:    *cuisine,
		MealType:   *meal,
		Difficulty: *difficulty,
	}

	generated := generator.GenerateRecipe(ctx, prefs, diet, have)
	printRecipe(generated)
}

func runAdapt(ctx context.Context, corpus recipe.CorpusLoader, generator ai.Generator, args []string) {
	fs := flag.NewFlagSet("adapt", flag.ExitOnError)
	var have listFlag
	fs.Var(&have, "have", "Available ingredients (comma separated)")
	fs.Parse(args)

	r, ok := findRecipeArg(ctx, corpus, fs.Args())
	if !ok {
		return
	}

	adapted := generator.AdaptRecipe(ctx, r, have, nil)
	printRecipe(adapted)
}

func runTips(ctx context.Context, corpus recipe.CorpusLoader, generator ai.Generator, args []string) {
	fs := flag.NewFlagSet("tips", flag.ExitOnError)
	fs.Parse(args)

	r, ok := findRecipeArg(ctx, corpus, fs.Args())
	if !ok {
		return
	}

	tips := generator.CookingTips(ctx, r)
	fmt.Println("\nCooking Tips:")
	for i, tip := range tips {
		fmt.Printf(" %d. %s\n", i+1, tip)
	}
}

// findRecipeArg 從位置參數解析食譜 ID 並查詢語料庫
func findRecipeArg(ctx context.Context, corpus recipe.CorpusLoader, args []string) (recipe.Recipe, bool) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Recipe ID required.")
		os.Exit(1)
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid recipe ID: %s\n", args[0])
		os.Exit(1)
	}

	recipes, err := corpus.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load recipes: %v\n", err)
		os.Exit(1)
	}

	r, ok := recipe.FindByID(recipes, id)
	if !ok {
		fmt.Println("Recipe not found.")
		return recipe.Recipe{}, false
	}
	return r, true
}

func printRecipe(r recipe.Recipe) {
	fmt.Printf("\n=== %s ===\n", r.Name)
	fmt.Printf("Cuisine: %s  |  Meal: %s  |  Difficulty: %s\n", valueOrNA(r.Cuisine), valueOrNA(r.MealType), valueOrNA(r.Difficulty))
	fmt.Printf("Prep: %d min  |  Cook: %d min  |  Servings: %d\n", r.PrepTime, r.CookTime, r.Servings)

	if flags := dietaryLabels(r.DietaryInfo); len(flags) > 0 {
		fmt.Println("Dietary:", strings.Join(flags, ", "))
	}

	fmt.Println("\nIngredients:")
	for _, ing := range r.Ingredients {
		fmt.Printf(" - %s\n", ing)
	}

	fmt.Println("\nSteps:")
	for i, step := range r.Steps {
		fmt.Printf(" %d. %s\n", i+1, step)
	}
}

func dietaryLabels(info recipe.DietaryInfo) []string {
	labels := []string{}
	for _, entry := range []struct {
		label string
		set   bool
	}{
		{"vegetarian", info.Vegetarian},
		{"vegan", info.Vegan},
		{"gluten-free", info.GlutenFree},
		{"dairy-free", info.DairyFree},
		{"nut-free", info.NutFree},
		{"low-carb", info.LowCarb},
		{"keto", info.Keto},
	} {
		if entry.set {
			labels = append(labels, entry.label)
		}
	}
	return labels
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
