package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/internal/service/companion"
	"github.com/sandevgo/anjali/pkg/log"
)

const maxBodyBytes = 20 << 20

type Companion interface {
	Process(ctx context.Context, text string, image *companion.Image) (companion.Reply, error)
}

type Session interface {
	Mood() core.Mood
	SetMood(name string) (core.Mood, error)
}

type Voice interface {
	Listen(ctx context.Context, audio []byte, filename string) (string, string, error)
	Say(ctx context.Context, reply string) ([]byte, error)
}

type Briefer interface {
	Deliver(ctx context.Context, mood core.Mood) (string, error)
}

type StatusReader interface {
	Status(ctx context.Context) (core.RelationshipStatus, error)
}

type MemoryManager interface {
	List(ctx context.Context, limit int) ([]core.MemoryRecord, error)
	Forget(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

type Deps struct {
	Companion     Companion
	Session       Session
	Voice         Voice
	Briefing      Briefer
	Status        StatusReader
	Memory        MemoryManager
	Conversations core.ConversationsRepository
	Facts         core.FactsRepository
}

// Server is the JSON API over the companion.
type Server struct {
	addr    string
	deps    Deps
	httpSrv *http.Server
}

func NewServer(addr string, deps Deps) *Server {
	return &Server{addr: addr, deps: deps}
}

func (s *Server) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx).With().Str("component", "httpapi").Logger()

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.httpSrv = &http.Server{
		Handler:           s.Routes(&logger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	logger.Info().Str("addr", ln.Addr().String()).Msg("starting http api")
	if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Routes builds the router. Every request is logged with its id, status
// and duration.
func (s *Server) Routes(logger *zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		hlog.NewHandler(*logger),
		hlog.RequestIDHandler("req_id", "X-Request-Id"),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Stringer("url", r.URL).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
		middleware.Recoverer,
	)

	h := &handlers{deps: s.deps}

	r.Get("/health", h.health)
	r.Post("/chat", h.chat)
	r.Post("/voice", h.voice)
	r.Post("/speech", h.speech)
	r.Get("/briefing", h.briefing)
	r.Get("/relationship", h.relationship)
	r.Get("/conversations", h.conversations)

	r.Route("/memories", func(r chi.Router) {
		r.Get("/", h.listMemories)
		r.Delete("/", h.clearMemories)
		r.Delete("/{id}", h.forgetMemory)
	})

	r.Route("/facts", func(r chi.Router) {
		r.Get("/", h.listFacts)
		r.Get("/{key}", h.getFact)
		r.Put("/{key}", h.putFact)
	})

	r.Get("/mood", h.getMood)
	r.Put("/mood", h.putMood)

	return r
}
