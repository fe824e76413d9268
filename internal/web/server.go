package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/cache"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/content"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/mailer"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/search"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/store"
)

// Options wires the handler dependencies and tuning knobs.
type Options struct {
	Store          store.Store
	Content        *content.Service
	Suggester      *search.Suggester
	Resolver       *search.Resolver
	Mailer         *mailer.Mailer
	Cache          cache.Cache
	SuggestionTTL  time.Duration
	AllowedOrigins []string
	ContactPerMin  int
}

// Server is the public site backend.
type Server struct {
	store         store.Store
	content       *content.Service
	suggester     *search.Suggester
	resolver      *search.Resolver
	mailer        *mailer.Mailer
	cache         cache.Cache
	suggestionTTL time.Duration
	router        chi.Router
}

// NewServer builds the router and handlers.
func NewServer(opts Options) *Server {
	s := &Server{
		store:         opts.Store,
		content:       opts.Content,
		suggester:     opts.Suggester,
		resolver:      opts.Resolver,
		mailer:        opts.Mailer,
		cache:         opts.Cache,
		suggestionTTL: opts.SuggestionTTL,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	contactLimiter := newIPLimiter(opts.ContactPerMin)

	r.Get("/health", s.handleHealth)
	r.Get("/search", s.handleSearch)
	r.Get("/search/suggestions", s.handleSuggestions)
	r.With(contactLimiter.middleware).Post("/contact", s.handleContact)

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", s.handleHome)
		r.Get("/treks", s.handleListTreks)
		r.Get("/treks/{id}", s.handleTrekDetail)
		r.Get("/blogs", s.handleBlogs)
		r.Get("/travel-your-way", s.handleTravelYourWay)
		r.Get("/about", s.handleAbout)
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs each request with latency and status via the global zap
// logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
