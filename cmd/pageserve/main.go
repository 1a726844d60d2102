// pageserve serves rendered page annotations over HTTP.
//
// Every endpoint takes the pid and page query parameters and resolves the
// page layout against the configured source, the same way the viewer page
// does.
//
// Usage:
//
//	pageserve -config pageview.yaml [options]
//
// Options:
//
//	-config string    YAML config file
//	-listen string    Listen address (overrides config)
//	-source string    Viewer page URL or directory (overrides config)
//
// Endpoints:
//
//	GET /view?pid=doc1&page=3&highlight=0&format=png
//	GET /blocks?pid=doc1&page=3
//	GET /hocr?pid=doc1&page=3
//	GET /healthz
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gardar/pageview/pkg/config"
	"github.com/gardar/pageview/pkg/fetch"
	"github.com/gardar/pageview/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	listen := flag.String("listen", "", "Listen address")
	source := flag.String("source", "", "Viewer page URL or directory the data is resolved against")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *source != "" {
		cfg.Source = *source
	}

	logger := cfg.Logger()

	client := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	src, err := fetch.New(cfg.Source,
		fetch.WithClient(client),
		fetch.WithUserAgent(cfg.UserAgent),
	)
	if err != nil {
		logger.Error("invalid source", "source", cfg.Source, "error", err)
		os.Exit(1)
	}

	h, err := server.New(cfg, src, logger)
	if err != nil {
		logger.Error("failed to create handler", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: otelhttp.NewHandler(h.Router(), "pageserve"),

		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("pageserve listening", "addr", cfg.Listen, "source", cfg.Source)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
