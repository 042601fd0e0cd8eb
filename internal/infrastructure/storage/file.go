package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"recipe-assistant/internal/core/recipe"
)

// CorpusStore 以 JSON 檔案存放食譜語料庫。
// 檔案格式為 UTF-8 的食譜陣列，非 ASCII 字元原樣保留。
type CorpusStore struct {
	path string
}

// NewCorpusStore 創建語料庫儲存
func NewCorpusStore(path string) *CorpusStore {
	return &CorpusStore{path: path}
}

// Load 讀取全部食譜。檔案不存在時回傳空語料庫，不視為錯誤。
func (s *CorpusStore) Load(ctx context.Context) ([]recipe.Recipe, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []recipe.Recipe{}, nil
		}
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var recipes []recipe.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}
	return recipes, nil
}

// Save 覆寫全部食譜
func (s *CorpusStore) Save(ctx context.Context, recipes []recipe.Recipe) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create corpus directory: %w", err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recipes); err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	return nil
}
