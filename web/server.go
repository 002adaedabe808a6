// Package web serves the annotation JSON API: data files, their sentences,
// the projected sentence pairs and their labels.
package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/revelaction/srlproj/dataset"
	"github.com/revelaction/srlproj/storage"
)

// Corpus reads the data files of the annotation server.
type Corpus interface {
	Files(pattern string) ([]string, error)
	EnglishSentences(file string) ([]string, error)
	Sentence(file string, index int) (dataset.Record, error)
}

type Server struct {
	echo   *echo.Echo
	corpus Corpus
	repo   storage.AnnotationRepository
	logger *slog.Logger
}

// New creates the server and registers its routes.
func New(corpus Corpus, repo storage.AnnotationRepository, opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		echo:   echo.New(),
		corpus: corpus,
		repo:   repo,
		logger: cfg.logger,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
			}
			s.logger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.Any("err", v.Error),
			)
			return nil
		},
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.GET("/labels", s.labels)
	api.GET("/files", s.files)              // sorted by number of annotations
	api.GET("/files/:file", s.sentences)    // "/api/files/OpenSubtitles_en_tt0111161_he"
	api.GET("/files/:file/:sent", s.pair)   // "/api/files/OpenSubtitles_en_tt0111161_he/3"
	api.POST("/files/:file/:sent", s.label) // form or JSON "label"
}

// Handler returns the http.Handler of the routes.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr and serves until Shutdown. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
