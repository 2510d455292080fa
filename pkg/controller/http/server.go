package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/secmon-lab/scribe/pkg/usecase"
	"github.com/secmon-lab/scribe/pkg/utils/logging"
	"github.com/secmon-lab/scribe/pkg/utils/safe"
)

const (
	defaultMaxBodyBytes = 32 << 20
	requestIDHeader     = "X-Request-ID"
)

type Server struct {
	router       *chi.Mux
	uc           *usecase.UseCases
	maxBodyBytes int64
}

type Options func(*Server)

// WithMaxBodyBytes limits the size of request bodies. Documents arrive inline, so the
// default is generous.
func WithMaxBodyBytes(n int64) Options {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:       r,
		uc:           uc,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(middleware.RequestSize(s.maxBodyBytes))

		r.Route("/model", func(r chi.Router) {
			r.Post("/resolve", s.resolveModelHandler)
			r.Post("/params", s.modelParamsHandler)
		})
		r.Route("/context", func(r chi.Router) {
			r.Post("/documents", s.contextDocumentsHandler)
			r.Post("/reflections", s.reflectionsHandler)
			r.Post("/artifact", s.artifactHandler)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger assigns a request ID and stores a logger carrying it in the request context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		logger := logging.Default().With("request_id", reqID)
		ctx := logging.With(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte("ok"))
}
