package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mgierok/guitar-specs2/frontend/internal/config"
	"github.com/mgierok/guitar-specs2/frontend/internal/logger"
	"github.com/mgierok/guitar-specs2/frontend/internal/site"
	"github.com/mgierok/guitar-specs2/frontend/internal/storage"
	"github.com/mgierok/guitar-specs2/frontend/internal/web"
	"github.com/mgierok/guitar-specs2/frontend/pkg/catalog"
	"github.com/mgierok/guitar-specs2/frontend/pkg/httpclient"
)

const shutdownTimeout = 10 * time.Second

// Server is the web frontend runtime. It owns the HTTP server, the catalog
// client and the response cache backing it.
type Server struct {
	cfg     *config.Config
	handler http.Handler
	log     logger.Logger
	store   storage.Store
}

// NewServer wires the catalog client, site definition and page router from config.
func NewServer(cfg *config.Config, log logger.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	s, err := site.Load(cfg.SiteFile)
	if err != nil {
		return nil, fmt.Errorf("load site: %w", err)
	}
	log.InfoObj("site loaded", "site_meta", map[string]any{
		"name":          s.Name,
		"metadata_base": s.MetadataBase,
		"cards":         len(s.Cards),
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		DefaultTTL:      cfg.Revalidate,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	transport := httpclient.NewCachingClient(httpclient.NewRestyClient(cfg.APITimeout), store, log)
	client := catalog.New(cfg.APIBase, transport, catalog.WithRevalidate(cfg.Revalidate))
	log.InfoObj("catalog client ready", "catalog_config", map[string]any{
		"base_url":           client.BaseURL(),
		"revalidate_seconds": int(cfg.Revalidate.Seconds()),
		"timeout_seconds":    int(cfg.APITimeout.Seconds()),
	})

	h, err := web.NewHandler(client, s, log)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build handlers: %w", err)
	}

	return &Server{
		cfg:     cfg,
		handler: web.NewRouter(h, log),
		log:     log,
		store:   store,
	}, nil
}

// Handler exposes the routed page handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on the configured port and serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s == nil || s.handler == nil {
		return fmt.Errorf("server is not initialized")
	}
	ln, err := net.Listen("tcp", ":"+s.cfg.ServerPort)
	if err != nil {
		s.closeStore()
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until the context is cancelled, then drains
// in-flight requests and closes the store.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.closeStore()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.log.InfoObj("web server listening", "server_state", map[string]any{
		"addr": ln.Addr().String(),
		"env":  s.cfg.Env,
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.log.InfoObj("web server shutting down", "reason", ctx.Err())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// closeStore closes the storage backend, logging any errors encountered.
func (s *Server) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.log.ErrorObj("storage close failed", "error", err)
	}
}
