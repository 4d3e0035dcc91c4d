package service

import (
	"log"
	"strings"
	"unicode/utf8"
)

const maxAffirmationLogSnippetRunes = 512

// logAffirmationExchange 输出生成请求与响应的关键信息，方便排查模型行为。
func logAffirmationExchange(phase, content string) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		log.Printf("[affirmation] %s: <empty>", phase)
		return
	}

	runeCount := utf8.RuneCountInString(trimmed)
	snippet := trimmed
	if runeCount > maxAffirmationLogSnippetRunes {
		snippet = string([]rune(trimmed)[:maxAffirmationLogSnippetRunes]) + "…(truncated)"
	}
	log.Printf("[affirmation] %s (runes=%d): %s", phase, runeCount, snippet)
}
