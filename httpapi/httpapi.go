// Package httpapi exposes the inbound webhook, a liveness probe, a health
// endpoint, and the optional trade-fan-out websocket, via echo.
package httpapi

import (
	"compress/gzip"
	"compress/zlib"
	"context"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/linzigeer/sol-dex-datahub-go/kvstore"
	"github.com/linzigeer/sol-dex-datahub-go/pipeline"
	"github.com/linzigeer/sol-dex-datahub-go/wsfanout"
)

// maxBodyBytes is the inbound webhook's body-size ceiling; the upstream
// provider ships batches well under this in steady state.
const maxBodyBytes = 300 << 20 // 300 MiB

// New builds the echo instance with every route wired.
func New(store kvstore.Store, fanout *wsfanout.Hub) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(decompressMiddleware)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			logrus.WithError(err).Warn("httpapi: kv store unreachable")
			return c.String(http.StatusServiceUnavailable, "kv store unreachable")
		}
		return c.String(http.StatusOK, "ok")
	})

	e.POST("/sol_dex_stream", func(c echo.Context) error {
		body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
		if err != nil {
			return c.String(http.StatusBadRequest, "error reading body")
		}
		if err := pipeline.Ingest(c.Request().Context(), store, string(body)); err != nil {
			logrus.WithError(err).Warn("httpapi: ingest rejected")
			return c.String(http.StatusServiceUnavailable, "queue full")
		}
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/ws", func(c echo.Context) error {
		return fanout.Upgrade(c.Response(), c.Request())
	})

	return e
}

// decompressMiddleware transparently unwraps gzip/deflate/br request
// bodies; identity bodies pass through untouched.
func decompressMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		switch req.Header.Get("Content-Encoding") {
		case "gzip":
			zr, err := gzip.NewReader(req.Body)
			if err != nil {
				return c.String(http.StatusBadRequest, "bad gzip body")
			}
			req.Body = io.NopCloser(zr)
		case "deflate":
			zr, err := zlib.NewReader(req.Body)
			if err != nil {
				return c.String(http.StatusBadRequest, "bad deflate body")
			}
			req.Body = io.NopCloser(zr)
		case "br":
			req.Body = io.NopCloser(brotli.NewReader(req.Body))
		}
		return next(c)
	}
}

// Run starts the echo server and blocks until ctx is cancelled or the
// server errors.
func Run(ctx context.Context, e *echo.Echo, listenOn string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(listenOn) }()
	select {
	case <-ctx.Done():
		return e.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
