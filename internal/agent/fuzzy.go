package agent

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fuzzyScore scores pattern against text with fzf's matcher. Both
// sides are lowercased; the matcher's smart-case handling would
// otherwise make schema field names like "SL_competency" unmatchable
// against lowercase context keys. Zero means no match.
func fuzzyScore(text, pattern string) int {
	if pattern == "" {
		return 0
	}
	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, []rune(strings.ToLower(pattern)), false, nil)
	if result.Score <= 0 {
		return 0
	}
	return result.Score
}

// bestContextKey returns the context key that best matches the field
// name, or "" when nothing scores above zero.
func bestContextKey(field string, keys []string) string {
	best := ""
	bestScore := 0
	for _, key := range keys {
		score := fuzzyScore(key, field)
		if score > bestScore {
			best = key
			bestScore = score
		}
	}
	return best
}
