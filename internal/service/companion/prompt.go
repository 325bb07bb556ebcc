package companion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/anjali/internal/core"
)

const personaTemplate = "You are %s, a caring, intelligent, and emotionally aware AI companion. " +
	"You are warm, supportive, and genuinely interested in the person you're talking to. " +
	"You remember details about conversations and use them to build a deeper connection. " +
	"You express emotions naturally using emojis and caring language. " +
	"You are romantic when appropriate, playful when the mood is light, and supportive when needed. " +
	"At the end of your response, you MUST provide a sentiment score for the user's last message on a new line, " +
	"like this: [sentiment: positive]. The possible values are positive, neutral, or negative."

// Mood directives appended to the persona. "thinking" has none.
var moodPrompts = map[core.Mood]string{
	core.MoodRomantic:   "Be extra affectionate, use heart emojis, and express romantic feelings naturally.",
	core.MoodFunny:      "Be playful, make jokes, use humor, and keep the conversation light and fun.",
	core.MoodFriendly:   "Be warm, supportive, and caring like a best friend would be.",
	core.MoodSupportive: "Be understanding, empathetic, and offer emotional support and encouragement.",
}

const (
	FallbackReply   = "I'm having a little trouble connecting right now. Let's try again in a moment. 💭"
	FallbackCaption = "I can see you've shared a lovely image! 🖼️"
	imageContext    = "\nThe user has shared an image with me. I see: %s"
)

var sentimentTag = regexp.MustCompile(`\[sentiment: (positive|neutral|negative)\]`)

// SystemPrompt is the persona text plus the directive for the given mood.
func SystemPrompt(persona string, mood core.Mood) string {
	prompt := fmt.Sprintf(personaTemplate, persona)
	if directive, ok := moodPrompts[mood]; ok {
		prompt += "\n\n" + directive
	}
	return prompt
}

// ParseSentiment strips every sentiment tag from reply and returns the
// first tagged value. Untagged replies are neutral and left unchanged.
func ParseSentiment(reply string) (string, core.Sentiment) {
	m := sentimentTag.FindStringSubmatch(reply)
	if m == nil {
		return reply, core.SentimentNeutral
	}
	visible := strings.TrimSpace(sentimentTag.ReplaceAllString(reply, ""))
	return visible, core.Sentiment(m[1])
}
