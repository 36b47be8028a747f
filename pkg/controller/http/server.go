package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pqops/relsnap/pkg/domain/interfaces"
	"github.com/pqops/relsnap/pkg/utils/authtoken"
)

// config holds internal HTTP server configuration
type config struct {
	addr   string
	issuer *authtoken.Issuer
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithTokenIssuer enables bearer-token authentication on the API routes
func WithTokenIssuer(issuer *authtoken.Issuer) Option {
	return func(c *config) {
		c.issuer = issuer
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server exposing the aggregation and
// connection-diagnosis operations
func NewServer(
	ctx context.Context,
	collectUC interfaces.CollectUseCase,
	connectionUC interfaces.ConnectionUseCase,
	store interfaces.SnapshotStore,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	handler := newProductHandler(collectUC, connectionUC, store)

	router.Route("/api/v1", func(r chi.Router) {
		if cfg.issuer != nil {
			r.Use(AuthMiddleware(cfg.issuer))
		}
		r.Post("/products/{productID}/collect", handler.Collect)
		r.Get("/products/{productID}/snapshots", handler.ListSnapshots)
		r.Get("/products/{productID}/connection/sonarqube", handler.TestSonarqube)
		r.Get("/products/{productID}/connection/jira", handler.TestJira)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
