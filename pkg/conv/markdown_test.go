package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain reply", input: "Good morning!", want: "Good morning!\n"},
		{name: "bold label", input: "💫 **Mood**", want: "💫 <strong>Mood</strong>\n"},
		{name: "emphasis", input: "*smiles*", want: "<em>smiles</em>\n"},
		{name: "strikethrough", input: "~~grumpy~~", want: "<del>grumpy</del>\n"},
		{name: "command as code", input: "`/mood romantic`", want: "<code>/mood romantic</code>\n"},
		{name: "recalled memory quoted", input: "> I love hiking", want: "<blockquote>\nI love hiking\n</blockquote>\n"},
		{name: "link keeps href only", input: "[zenquotes](https://zenquotes.io)", want: "<a href=\"https://zenquotes.io\">zenquotes</a>\n"},
		{name: "heading flattened", input: "# Daily briefing", want: "Daily briefing\n"},
		{name: "script removed", input: "<script>alert(1)</script>", want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownToTelegramHTML([]byte(tt.input)))
		})
	}
}

func TestMarkdownToTelegramHTML_Briefing(t *testing.T) {
	md := "Good morning! Here's your daily briefing:\n\n- **Weather**: sunny\n- **Inspiration**: keep going"

	got := MarkdownToTelegramHTML([]byte(md))

	assert.Contains(t, got, "<strong>Weather</strong>: sunny")
	assert.Contains(t, got, "<strong>Inspiration</strong>: keep going")
	assert.NotContains(t, got, "<ul>")
	assert.NotContains(t, got, "<li>")
}

func TestMarkdownToPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "  ", want: ""},
		{name: "plain", input: "Good morning!", want: "Good morning!"},
		{name: "emphasis removed", input: "I **really** like *tea*", want: "I really like tea"},
		{name: "link label kept", input: "see [this](https://example.com)", want: "see this"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownToPlainText([]byte(tt.input)))
		})
	}
}
