package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"glow/internal/handler"
	"glow/internal/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ハンドラ一式
type Handlers struct {
	Catalog   *handler.CatalogHandler
	Review    *handler.ReviewHandler
	Favorite  *handler.FavoriteHandler
	ReviewRPS float64
	Burst     int
}

type Server struct {
	e   *echo.Echo
	log zerolog.Logger
}

// New はミドルウェアとルートを登録したechoを作る
func New(log zerolog.Logger, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	metrics := middleware.NewMetrics()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echo.WrapMiddleware(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "glow-api")
	}))
	e.Use(middleware.RequestLog(log))
	e.Use(metrics.Middleware())
	// 開発中はすべてのoriginを許可
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: []string{"*"}}))

	RegisterRoutes(e, h, metrics)

	return &Server{e: e, log: log}
}

func (s *Server) Echo() *echo.Echo {
	return s.e
}

// Start はctxがキャンセルされるまで待ち、graceful shutdownする
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("glow-api listening")
		errCh <- s.e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info().Msg("glow-api stopped")
	return nil
}
