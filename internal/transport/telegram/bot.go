package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/internal/service/companion"
	"github.com/sandevgo/anjali/pkg/log"
	"github.com/sandevgo/anjali/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const (
	baseContextKey = "base_context"
	maxDownload    = 20 << 20
)

type Companion interface {
	Process(ctx context.Context, text string, image *companion.Image) (companion.Reply, error)
}

type Voice interface {
	Listen(ctx context.Context, audio []byte, filename string) (string, string, error)
	Say(ctx context.Context, reply string) ([]byte, error)
}

type Speaker interface {
	Speak() bool
}

type Bot struct {
	bot       *tele.Bot
	companion Companion
	router    core.CmdRouter
	voice     Voice
	speaker   Speaker
	ownerID   int64
	download  func(file *tele.File) ([]byte, error)
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	c Companion,
	router core.CmdRouter,
	voice Voice,
	speaker Speaker,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	// NewBot calls getMe, so a flaky network at boot is retried.
	var b *tele.Bot
	err := retry.NewDefaultRetrier().Do(ctx, func() error {
		var err error
		b, err = tele.NewBot(pref)
		if errors.Is(err, tele.ErrUnauthorized) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:       b,
		companion: c,
		router:    router,
		voice:     voice,
		speaker:   speaker,
		ownerID:   cfg.GetTelegramOwnerID(),
	}
	bot.download = bot.fetchFile

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})
	b.Use(bot.ownerOnly)

	b.Handle(tele.OnText, bot.handleText)
	b.Handle(tele.OnPhoto, bot.handlePhoto)
	b.Handle(tele.OnVoice, bot.handleVoice)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) ownerOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil || c.Sender().ID != b.ownerID {
			return nil
		}
		return next(c)
	}
}

func contextOf(c tele.Context) context.Context {
	ctx, ok := c.Get(baseContextKey).(context.Context)
	if !ok {
		ctx = context.Background()
	}
	return log.WithComponent(ctx, "telegram")
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := contextOf(c)

	if out, ok := b.router.Execute(ctx, c.Text()); ok {
		return sendMarkdown(ctx, c, out)
	}

	_ = c.Notify(tele.Typing)
	return b.turn(ctx, c, c.Text(), nil)
}

func (b *Bot) handlePhoto(c tele.Context) error {
	ctx := contextOf(c)
	logger := log.FromCtx(ctx)

	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	_ = c.Notify(tele.UploadingPhoto)

	data, err := b.download(&photo.File)
	if err != nil {
		logger.Error().Err(err).Msg("failed to download photo")
		return c.Send(companion.FallbackReply)
	}

	_ = c.Notify(tele.Typing)
	return b.turn(ctx, c, c.Message().Caption, &companion.Image{Data: data, MimeType: "image/jpeg"})
}

func (b *Bot) handleVoice(c tele.Context) error {
	ctx := contextOf(c)
	logger := log.FromCtx(ctx)

	v := c.Message().Voice
	if v == nil {
		return nil
	}
	_ = c.Notify(tele.RecordingAudio)

	data, err := b.download(&v.File)
	if err != nil {
		logger.Error().Err(err).Msg("failed to download voice message")
		return c.Send(companion.NoticeFor(err))
	}

	text, notice, err := b.voice.Listen(ctx, data, "voice.ogg")
	if err != nil {
		return c.Send(notice)
	}

	if err := c.Send(fmt.Sprintf("🎤 <i>%s</i>", html.EscapeString(text)), tele.ModeHTML); err != nil {
		logger.Warn().Err(err).Msg("failed to echo transcript")
	}
	_ = c.Notify(tele.Typing)
	return b.turn(ctx, c, text, nil)
}

// turn runs one conversational turn and sends the reply, spoken as well
// when the session asks for it.
func (b *Bot) turn(ctx context.Context, c tele.Context, text string, image *companion.Image) error {
	logger := log.FromCtx(ctx)

	reply, err := b.companion.Process(ctx, text, image)
	if errors.Is(err, core.ErrEmptyInput) {
		return nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("turn failed")
		return c.Send(companion.FallbackReply)
	}

	if err := sendMarkdown(ctx, c, reply.Text); err != nil {
		return err
	}

	if b.speaker == nil || !b.speaker.Speak() {
		return nil
	}
	_ = c.Notify(tele.RecordingAudio)
	audio, err := b.voice.Say(ctx, reply.Text)
	if err != nil {
		return c.Send(companion.NoticeVoiceFailed)
	}
	return sendAudio(c, audio)
}

func (b *Bot) fetchFile(file *tele.File) ([]byte, error) {
	rc, err := b.bot.File(file)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxDownload))
}
