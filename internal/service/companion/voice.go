package companion

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/conv"
	"github.com/sandevgo/anjali/pkg/log"
)

const (
	NoticeUnrecognized = "I couldn't understand what you said. Please try again."
	NoticeVoiceFailed  = "Sorry, I couldn't generate voice output."
)

var ErrVoiceUnavailable = errors.New("voice is not configured")

// Voice turns speech in and out of the conversation.
type Voice struct {
	stt core.Transcriber
	tts core.Synthesizer
}

func NewVoice(stt core.Transcriber, tts core.Synthesizer) *Voice {
	return &Voice{stt: stt, tts: tts}
}

// Listen transcribes audio. On failure the returned notice is the text to
// show the user instead of a reply.
func (v *Voice) Listen(ctx context.Context, audio []byte, filename string) (string, string, error) {
	if v == nil || v.stt == nil {
		return "", NoticeFor(ErrVoiceUnavailable), ErrVoiceUnavailable
	}
	text, err := v.stt.Transcribe(ctx, audio, filename)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("transcription failed")
		return "", NoticeFor(err), err
	}
	return text, "", nil
}

// Say synthesizes a reply. Markdown is flattened to plain text first.
func (v *Voice) Say(ctx context.Context, reply string) ([]byte, error) {
	if v == nil || v.tts == nil {
		return nil, ErrVoiceUnavailable
	}
	text := conv.MarkdownToPlainText([]byte(reply))
	if text == "" {
		return nil, core.ErrEmptyInput
	}
	audio, err := v.tts.Synthesize(ctx, text)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("speech synthesis failed")
		return nil, err
	}
	return audio, nil
}

func NoticeFor(err error) string {
	if errors.Is(err, core.ErrNoSpeech) {
		return NoticeUnrecognized
	}
	return fmt.Sprintf("Speech service error: %v", err)
}
