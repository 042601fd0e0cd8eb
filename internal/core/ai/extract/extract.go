// Package extract 從模型回傳的自由文字中擷取結構化 JSON。
// 這是盡力而為的啟發式，不是完整的 JSON tokenizer：
// 若前後文字本身含有大括號或中括號，可能擷取到錯誤的片段。
// 呼叫端必須把「找不到」當成預期結果走回退路徑，而不是例外。
package extract

import (
	"encoding/json"
	"strings"
)

// Kind 擷取結果的種類
type Kind int

const (
	// None 沒有找到任何 JSON 內容
	None Kind = iota
	// Object 擷取到 JSON 物件
	Object
	// Array 擷取到 JSON 陣列
	Array
)

// Extract 從文字中擷取一段 JSON。
// 先嘗試物件（第一個 { 到最後一個 }，貪婪），失敗再嘗試陣列
// （容忍一層巢狀的中括號區段）。兩者都失敗時回傳空字串與 None。
func Extract(text string) (string, Kind) {
	text = TrimFences(text)

	if raw, ok := objectSpan(text); ok {
		return raw, Object
	}
	if raw, ok := arraySpan(text); ok {
		return raw, Array
	}
	return "", None
}

// TrimFences 去掉 ```json ... ``` 的 markdown 包裹
func TrimFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// objectSpan 取第一個 { 到最後一個 } 的區段並驗證是否為合法 JSON
func objectSpan(text string) (string, bool) {
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	raw := text[start : end+1]
	if !json.Valid([]byte(raw)) {
		return "", false
	}
	return raw, true
}

// arraySpan 從每個 [ 開始掃描，容忍一層巢狀；
// 巢狀超過一層的候選區段視為不匹配，改從下一個 [ 繼續。
func arraySpan(text string) (string, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}

		depth := 0
		for j := i; j < len(text); j++ {
			switch text[j] {
			case '[':
				depth++
				if depth > 2 {
					depth = -1
				}
			case ']':
				depth--
			}
			if depth < 0 {
				break
			}
			if depth == 0 {
				raw := text[i : j+1]
				if json.Valid([]byte(raw)) {
					return raw, true
				}
				break
			}
		}
	}
	return "", false
}
