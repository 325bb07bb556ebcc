package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/anjali/internal/config"
	"github.com/sandevgo/anjali/internal/core"
	briefingapi "github.com/sandevgo/anjali/internal/providers/briefing"
	"github.com/sandevgo/anjali/internal/providers/embed"
	"github.com/sandevgo/anjali/internal/providers/llm"
	"github.com/sandevgo/anjali/internal/providers/speech"
	"github.com/sandevgo/anjali/internal/providers/vision"
	"github.com/sandevgo/anjali/internal/service/briefing"
	"github.com/sandevgo/anjali/internal/service/command"
	"github.com/sandevgo/anjali/internal/service/companion"
	"github.com/sandevgo/anjali/internal/service/memory"
	"github.com/sandevgo/anjali/internal/service/relationship"
	"github.com/sandevgo/anjali/internal/storage/sqlite"
	"github.com/sandevgo/anjali/internal/storage/vector"
	"github.com/sandevgo/anjali/internal/transport/cli"
	"github.com/sandevgo/anjali/internal/transport/httpapi"
	"github.com/sandevgo/anjali/internal/transport/telegram"
	"github.com/sandevgo/anjali/pkg/log"
	"github.com/sandevgo/anjali/pkg/srv"
)

// stores is everything that works offline: both stores and the services
// that only read or maintain them.
type stores struct {
	cfg      *config.AppConfig
	store    *sqlite.Store
	index    *vector.Store
	memory   *memory.Memory
	tracker  *relationship.Tracker
	session  *companion.Session
	briefing *briefing.Briefing
	cleanups []srv.Service
}

// app adds the generator, captioner and voice on top of stores.
type app struct {
	*stores
	model     *llm.DynamicProvider
	companion *companion.Companion
	voice     *companion.Voice
	router    *command.Router
}

func newStores(ctx context.Context) *stores {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetEnvFilePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	appCfg := config.NewAppConfig(ctx)
	embedCfg := config.NewEmbeddingConfig(ctx)
	briefCfg := config.NewBriefingConfig(ctx)

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	store := sqlite.NewStore(db)

	embedder, err := embed.NewEmbedder(ctx, embedCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize embedder")
	}

	index, err := vector.NewStore(ctx, appCfg.GetVectorDir(), embedder)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize semantic store")
	}

	mood, err := core.ParseMood(appCfg.GetDefaultMood())
	if err != nil {
		logger.Warn().Str("mood", appCfg.GetDefaultMood()).Msg("unknown default mood, using friendly")
		mood = core.MoodFriendly
	}

	// A nil weather provider makes the briefing say weather is not set up.
	var weather core.WeatherProvider
	if briefCfg.WeatherAPIKey != "" {
		weather = briefingapi.NewWeatherClient(briefCfg.WeatherBaseURL, briefCfg.WeatherAPIKey, briefCfg.Timeout)
	}
	quotes := briefingapi.NewQuoteClient(briefCfg.QuoteBaseURL, briefCfg.Timeout)

	return &stores{
		cfg:     appCfg,
		store:   store,
		index:   index,
		memory:  memory.NewMemory(store, index),
		tracker: relationship.NewTracker(store),
		session: companion.NewSession(mood),
		briefing: briefing.NewBriefing(weather, quotes, store, briefing.Options{
			City:    briefCfg.City,
			Timeout: briefCfg.Timeout,
		}),
		cleanups: []srv.Service{
			srv.NewCleanup(db.Close),
			srv.NewCleanup(index.Close),
		},
	}
}

// close releases the stores outside of the service lifecycle.
func (s *stores) close(ctx context.Context) {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		if err := s.cleanups[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to close store")
		}
	}
}

// offlineRouter serves the commands that need no generator.
func (s *stores) offlineRouter() *command.Router {
	return command.New(command.NewCommands(command.Deps{
		Session:  s.session,
		Briefing: s.briefing,
		Status:   s.tracker,
		Memory:   s.memory,
		Facts:    s.store,
	}))
}

func newApp(ctx context.Context) *app {
	logger := log.FromCtx(ctx)
	s := newStores(ctx)

	llmCfg := config.NewLLMConfig(ctx)
	visionCfg := config.NewVisionConfig(ctx)
	speechCfg := config.NewSpeechConfig(ctx)

	model, err := llm.NewDynamicProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	captioner, err := vision.NewCaptioner(ctx, visionCfg, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize image captioner")
	}

	var voice *companion.Voice
	if client := speech.NewClient(speechCfg); client.Enabled() {
		voice = companion.NewVoice(client, client)
	}

	comp := companion.NewCompanion(s.session, s.store, s.memory, s.tracker, model, captioner, companion.Options{
		Persona:            s.cfg.GetPersonaName(),
		ContextWindow:      s.cfg.GetContextWindowSize(),
		RecallLimit:        s.cfg.GetRecallLimit(),
		HistoryTokenBudget: s.cfg.GetHistoryTokenBudget(),
		GenerateTimeout:    llmCfg.GetTimeout(),
	})

	router := command.New(command.NewCommands(command.Deps{
		Session:  s.session,
		Briefing: s.briefing,
		Status:   s.tracker,
		Memory:   s.memory,
		Facts:    s.store,
		Model:    model,
	}))

	return &app{
		stores:    s,
		model:     model,
		companion: comp,
		voice:     voice,
		router:    router,
	}
}

// NewServices wires every enabled transport. Cleanups come first so they
// shut down last.
func NewServices(ctx context.Context, stop context.CancelFunc) []srv.Service {
	logger := log.FromCtx(ctx)
	a := newApp(ctx)

	services := append([]srv.Service{}, a.cleanups...)
	services = append(services, memory.NewReconciler(a.memory))

	transports, err := initTransports(ctx, a, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled, set ANJALI_ENABLE_CLI, ANJALI_ENABLE_TELEGRAM or ANJALI_ENABLE_HTTP")
	}
	return append(services, transports...)
}

func initTransports(ctx context.Context, a *app, stop context.CancelFunc) ([]srv.Service, error) {
	var services []srv.Service

	if a.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.companion, a.router, a.voice, a.session)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if a.cfg.IsHTTPSelected() {
		services = append(services, httpapi.NewServer(a.cfg.HTTPAddr, httpapi.Deps{
			Companion:     a.companion,
			Session:       a.session,
			Voice:         a.voice,
			Briefing:      a.briefing,
			Status:        a.tracker,
			Memory:        a.memory,
			Conversations: a.store,
			Facts:         a.store,
		}))
	}

	if a.cfg.IsCLISelected() {
		rl, err := cli.NewReadLine(a.companion, a.router, a.cfg.GetRuntimePath())
		if err != nil {
			return nil, err
		}
		services = append(services, &stopOnReturn{Service: rl, stop: stop})
	}

	return services, nil
}

// stopOnReturn ends the process when the wrapped service returns, so
// typing exit in the terminal chat shuts everything down.
type stopOnReturn struct {
	srv.Service
	stop context.CancelFunc
}

func (s *stopOnReturn) Start(ctx context.Context) error {
	defer s.stop()
	return s.Service.Start(ctx)
}

func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
