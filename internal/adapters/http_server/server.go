package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Server struct {
	mux     *chi.Mux
	limiter *rate.Limiter
}

// New builds the router with the shared middleware stack. quoteRPS bounds
// the hot quoting path with a token bucket; 0 disables the limit.
func New(quoteRPS int) *Server {
	m := chi.NewRouter()

	// Middlewares go here, before any routes are added.
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(15 * time.Second))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	var rl *rate.Limiter
	if quoteRPS > 0 {
		rl = rate.NewLimiter(rate.Limit(quoteRPS), quoteRPS)
	}
	return &Server{mux: m, limiter: rl}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
