package server

import (
	"strconv"
	"time"

	"shop/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// New はechoインスタンスを組み立てる。ルーティングはroutes.go側。
func New(logger *zap.Logger, m *metrics.ServerMetrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(requestLogger(logger, m))

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

// アクセスログとメトリクス記録をまとめたミドルウェア
func requestLogger(logger *zap.Logger, m *metrics.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			elapsed := time.Since(start)
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			status := c.Response().Status

			m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("latency", elapsed),
			)

			return nil
		}
	}
}
