package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/J1407B-K/httpline/httpline"
)

var (
	addr       = flag.String("addr", "127.0.0.1:3000", "listen address")
	transport  = flag.String("transport", "tcp", "transport: tcp or gnet")
	mode       = flag.String("mode", "echo", "mode: echo or dispatch")
	workers    = flag.Int("workers", 0, "tcp connection workers, 0 handles one connection at a time")
	bufSize    = flag.Int("buf", 1024, "tcp read buffer size in bytes")
	maxRequest = flag.Int("max-request", 64<<10, "gnet max buffered request size in bytes")
	logFile    = flag.String("log-file", "", "optional rotating log file")
	debug      = flag.Bool("debug", false, "debug logging")
)

func main() {
	flag.Parse()

	logger := httpline.NewLogger(httpline.LogConfig{
		Debug:      *debug,
		File:       *logFile,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
	})
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	handler, err := newHandler(*mode, logger)
	if err != nil {
		return err
	}
	t, err := newTransport(logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return t.Serve(ctx, handler) })
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		return t.Close()
	})
	return g.Wait()
}

func newTransport(logger *zap.Logger) (httpline.Transport, error) {
	opts := []httpline.Option{
		httpline.WithLogger(logger),
		httpline.WithReadBufferSize(*bufSize),
		httpline.WithMaxRequestBytes(*maxRequest),
		httpline.WithWorkers(*workers),
	}
	if *transport == "gnet" {
		return httpline.NewGNetTransport(*addr, opts...), nil
	}
	return httpline.Listen(*addr, opts...)
}
