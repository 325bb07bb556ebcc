package telegram

import (
	"bytes"
	"context"
	"strings"

	"github.com/sandevgo/anjali/pkg/conv"
	"github.com/sandevgo/anjali/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if needed.
func sendMarkdown(ctx context.Context, c tele.Context, md string) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}

	for i, chunk := range splitHTML(html, maxTelegramMsgLen) {
		if err := c.Send(chunk, tele.ModeHTML); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

func sendAudio(c tele.Context, audio []byte) error {
	return c.Send(&tele.Audio{
		File:     tele.FromReader(bytes.NewReader(audio)),
		FileName: "reply.mp3",
		MIME:     "audio/mpeg",
	})
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
