package server

import (
	"glow/internal/handler"
	"glow/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h Handlers, metrics *middleware.Metrics) {
	e.GET("/", handler.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")
	h.Catalog.RegisterRoutes(api)
	h.Review.RegisterRoutes(api, middleware.RateLimit(h.ReviewRPS, h.Burst))
	h.Favorite.RegisterRoutes(api)

	// 未定義ルート
	e.RouteNotFound("/*", handler.NotFound)
}
