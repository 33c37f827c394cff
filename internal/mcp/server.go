package mcp

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roivaz/mcp-salesforce/internal/config"
	"github.com/roivaz/mcp-salesforce/internal/db"
	"github.com/roivaz/mcp-salesforce/internal/logging"
	"github.com/roivaz/mcp-salesforce/internal/salesforce"
	"github.com/roivaz/mcp-salesforce/internal/telemetry"
)

type Server struct {
	MCP       *server.MCPServer
	HTTP      *server.StreamableHTTPServer
	Handler   http.Handler
	Connector *salesforce.Connector
	DB        *db.Database
	log       logging.Logger
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	dispatcher := cfg.Dispatcher
	for _, d := range cfg.Registry.List() {
		mcpServer.AddTool(d.Tool(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return dispatcher.Call(ctx, req.Params.Name, req.GetArguments())
		})
	}

	endpoint := cfg.EndpointPath
	if endpoint == "" {
		endpoint = config.DefaultEndpointURL
	}
	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithEndpointPath(endpoint),
		server.WithStateLess(true),
	)

	return &Server{
		MCP:       mcpServer,
		HTTP:      httpServer,
		Handler:   router(cfg, endpoint, httpServer),
		Connector: cfg.Connector,
		DB:        cfg.Database,
		log:       cfg.Logger,
	}
}

func router(cfg Config, endpoint string, mcpHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(telemetry.HTTPMetricsMiddleware(cfg.Metrics))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if cfg.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{}))
	}
	r.Handle(endpoint, mcpHandler)
	return r
}

// Connect performs the one-time Salesforce login ahead of the first call.
func (s *Server) Connect(ctx context.Context) error {
	if s.Connector == nil {
		return nil
	}
	_, err := s.Connector.Client(ctx)
	return err
}

// ServeStdio runs the MCP session over in and out until ctx is done or in
// is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.MCP).Listen(ctx, in, out)
}

func (s *Server) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.log.Error(err, "error closing database")
		}
	}
}
