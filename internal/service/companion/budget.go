package companion

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/anjali/internal/core"
)

// TokenCounter returns the token length of a text.
type TokenCounter func(text string) int

var (
	encoding     *tiktoken.Tiktoken
	encodingErr  error
	encodingOnce sync.Once
)

// TiktokenCounter counts cl100k_base tokens. If the encoding cannot be
// loaded it estimates four bytes per token.
func TiktokenCounter(text string) int {
	encodingOnce.Do(func() {
		encoding, encodingErr = tiktoken.GetEncoding("cl100k_base")
	})
	if encodingErr != nil {
		return (utf8.RuneCountInString(text) + 3) / 4
	}
	return len(encoding.Encode(text, nil, nil))
}

// trimToBudget drops the oldest history entries until the total fits the
// budget. The newest entry is always kept. budget <= 0 disables trimming.
func trimToBudget(history []core.Message, budget int, count TokenCounter) []core.Message {
	if budget <= 0 || count == nil || len(history) == 0 {
		return history
	}

	total := 0
	sizes := make([]int, len(history))
	for i, m := range history {
		sizes[i] = count(m.Content)
		total += sizes[i]
	}

	start := 0
	for total > budget && start < len(history)-1 {
		total -= sizes[start]
		start++
	}
	return history[start:]
}
