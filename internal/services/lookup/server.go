package lookup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
	"github.com/louisbranch/fillari-i18n/internal/platform/timeouts"
	"github.com/louisbranch/fillari-i18n/internal/storage"
	storagesqlite "github.com/louisbranch/fillari-i18n/internal/storage/sqlite"
)

// Config defines the inputs for the lookup service.
//
// Translations come from the catalog database when DBPath is set, otherwise
// from Dir, otherwise from the translation sets embedded in the binary.
type Config struct {
	HTTPAddr          string
	Dir               string
	App               string
	DBPath            string
	ExcludeUnfinished bool
	ReadHeaderTimeout time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the lookup HTTP process.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	bundle          *catalog.Bundle
}

// NewServer loads the translations and builds a configured lookup server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = timeouts.Request
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	bundle, err := loadBundle(ctx, config)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           http.TimeoutHandler(NewHandler(bundle), config.RequestTimeout, "request timed out"),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}
	return &Server{
		httpAddr:        httpAddr,
		shutdownTimeout: config.ShutdownTimeout,
		httpServer:      httpServer,
		bundle:          bundle,
	}, nil
}

// Bundle returns the translations the server answers from.
func (s *Server) Bundle() *catalog.Bundle {
	if s == nil {
		return nil
	}
	return s.bundle
}

// Handler returns the server's HTTP routes.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe serves HTTP traffic until the context ends or the server stops.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("lookup server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("lookup server listening on %s (locales %s)", s.httpAddr, strings.Join(s.bundle.Locales(), ", "))
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		log.Printf("close http server: %v", err)
	}
}

func loadBundle(ctx context.Context, config Config) (*catalog.Bundle, error) {
	opts := catalog.Options{App: config.App, ExcludeUnfinished: config.ExcludeUnfinished}
	switch {
	case strings.TrimSpace(config.DBPath) != "":
		openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
		defer cancel()
		store, err := storagesqlite.Open(openCtx, config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open catalog store: %w", err)
		}
		defer store.Close()
		bundle, err := storage.LoadBundle(openCtx, store, opts)
		if err != nil {
			return nil, fmt.Errorf("load catalog store: %w", err)
		}
		return bundle, nil
	case strings.TrimSpace(config.Dir) != "":
		bundle, err := catalog.LoadDir(config.Dir, opts)
		if err != nil {
			return nil, fmt.Errorf("load translations dir: %w", err)
		}
		return bundle, nil
	default:
		bundle, err := catalog.LoadFromFS(catalog.EmbeddedFS(), opts)
		if err != nil {
			return nil, fmt.Errorf("load embedded translations: %w", err)
		}
		return bundle, nil
	}
}
