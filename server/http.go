package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/go-chi/chi/v5"

	"github.com/crenwick/loom/config"
	"github.com/crenwick/loom/dispatch"
	"github.com/crenwick/loom/logging"
	"github.com/crenwick/loom/workflow"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// Logger for server lifecycle diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Server is the HTTP front of the orchestration core. It serves the JSON-RPC
// A2A endpoint at /, the agent card at /.well-known/agent-card.json and a
// liveness probe at /healthz.
type Server struct {
	cfg       config.ServerConfig
	workflows *workflow.Registry
	defaultWf string
	httpSrv   *http.Server
	logger    logging.Logger
}

// New wires the dispatcher into an HTTP server.
func New(
	cfg config.ServerConfig,
	d *dispatch.Dispatcher,
	workflows *workflow.Registry,
	defaultWorkflow string,
	optFns ...func(o *Options),
) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	executor := NewExecutor(d, func(o *ExecutorOptions) {
		o.Logger = opts.Logger
	})
	card := BuildAgentCard(cfg, workflows, defaultWorkflow)

	rpcHandler := a2asrv.NewJSONRPCHandler(a2asrv.NewHandler(executor))
	cardHandler := a2asrv.NewStaticAgentCardHandler(card)

	r := chi.NewRouter()
	r.Get("/.well-known/agent-card.json", cardHandler.ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/", rpcHandler)

	return &Server{
		cfg:       cfg,
		workflows: workflows,
		defaultWf: defaultWorkflow,
		httpSrv: &http.Server{
			Addr:    cfg.Addr(),
			Handler: r,
		},
		logger: opts.Logger,
	}
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.banner()

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// banner logs the registered workflows and the routing convention once at
// startup.
func (s *Server) banner() {
	s.logger.Info("server starting",
		"addr", s.cfg.Addr(), "url", s.cfg.BaseURL(), "workflows", s.workflows.Len())
	for _, name := range s.workflows.Names() {
		spec, _ := s.workflows.Get(name)
		s.logger.Info("workflow available", "name", name, "pattern", string(spec.Pattern()))
	}
	s.logger.Info("routing convention",
		"format", "workflow:<name>|your message", "default", s.defaultWf)
}
