package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/chatbot-dev/chatbot/app"
	"github.com/chatbot-dev/chatbot/internal/config"
	"github.com/chatbot-dev/chatbot/internal/errors"
	"github.com/chatbot-dev/chatbot/pkg/assets"
	"github.com/chatbot-dev/chatbot/pkg/middleware"
	"github.com/chatbot-dev/chatbot/pkg/routes"
)

// HealthPath answers liveness probes.
const HealthPath = "/healthz"

// Server serves the application over HTTP.
type Server struct {
	cfg      *config.Config
	root     *app.Root
	routes   []routes.Route
	assets   assets.Source
	pkg      assets.Source
	resolver assets.Resolver
	registry *prometheus.Registry
	tracer   trace.TracerProvider
	logger   *slog.Logger

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithAssetSource replaces the disk source behind /assets.
func WithAssetSource(src assets.Source) Option {
	return func(s *Server) { s.assets = src }
}

// WithRegistry sets the Prometheus registry requests are recorded in and
// the metrics endpoint exposes.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithTracerProvider sets the tracer provider used for request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) { s.tracer = tp }
}

// New creates a server for root. The configuration is read, never
// modified. It fails when root declares two pages with the same path.
func New(cfg *config.Config, root *app.Root, opts ...Option) (*Server, error) {
	list, err := routes.Generate(root)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		root:   root,
		routes: list,
		pkg:    assets.NewDirSource(cfg.PkgRoot()),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default().With("component", "server")
	}
	if s.assets == nil {
		s.assets = assets.NewDirSource(cfg.SiteRootPath())
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if s.tracer == nil {
		s.tracer = otel.GetTracerProvider()
	}
	s.resolver = assets.LoadResolver(cfg.PkgRoot(), cfg.PkgPrefix())

	return s, nil
}

// Routes returns the generated page routes.
func (s *Server) Routes() []routes.Route {
	return s.routes
}

// Handler returns the complete HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		middleware.Recoverer(s.logger),
		middleware.OpenTelemetry(middleware.WithTracerProvider(s.tracer)),
	)
	if s.cfg.Metrics.Enabled {
		r.Use(middleware.Prometheus(middleware.WithRegistry(s.registry)))
	}
	r.Use(
		middleware.Logger(s.logger),
		chimw.GetHead,
	)

	r.Get(s.cfg.PkgPrefix()+"/*", s.serveSource(s.pkg))
	r.Get("/assets/*", s.serveSource(s.assets))
	r.Get("/favicon.ico", s.serveFavicon)
	if s.cfg.Metrics.Enabled {
		r.Method(http.MethodGet, s.cfg.Metrics.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	r.Get(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	for _, route := range s.routes {
		r.Get(route.Path, s.servePage(route))
	}

	r.NotFound(s.serveNotFound)
	r.MethodNotAllowed(s.serveNotFound)
	return r
}

// ListenAndServe binds the configured site address and serves until ctx
// is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.SiteAddr)
	if err != nil {
		return errors.New("E201").
			WithDetail("Could not listen on " + s.cfg.SiteAddr + ".").
			WithSuggestion("Stop the process using the address or change site-addr.").
			Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on http://" + ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Shutdown())
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
