package middleware

import (
	"time"

	"glow/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// リクエストごとに1行ログを出す。
// 5xxはerror、4xxはwarn、それ以外はinfo。
func RequestLog(l zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			log := logger.WithContext(req.Context(), l)

			var ev *zerolog.Event
			switch {
			case res.Status >= 500:
				ev = log.Error()
			case res.Status >= 400:
				ev = log.Warn()
			default:
				ev = log.Info()
			}
			if err != nil {
				ev = ev.Err(err)
			}

			ev.Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Int64("bytes", res.Size).
				Dur("latency", time.Since(start)).
				Msg("request")

			return nil
		}
	}
}
