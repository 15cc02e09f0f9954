package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/qween-code/barter-qween/internal/api"
	"github.com/qween-code/barter-qween/internal/matching"
	"github.com/qween-code/barter-qween/internal/notifier"
	"github.com/qween-code/barter-qween/internal/store"
	"github.com/qween-code/barter-qween/internal/trigger"
	"github.com/qween-code/barter-qween/internal/types"
)

func main() {
	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	logConfig := zap.NewProductionConfig()
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Debug {
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// run wires the store, trigger router, dispatcher and API, and serves until
// ctx is cancelled. Queued notifications are drained before it returns.
func run(ctx context.Context, cfg runConfig, logger *zap.Logger) error {
	logger.Info("Starting barterd",
		zap.String("addr", cfg.Addr),
		zap.String("push_gateway", notifier.RedactURL(cfg.PushGatewayURL)),
		zap.String("seed", cfg.SeedFile),
	)

	mem := store.NewMemory(nil)
	if cfg.SeedFile != "" {
		if err := mem.LoadSnapshot(cfg.SeedFile); err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}
		items, convs, offers := mem.Counts()
		logger.Info("Loaded seed snapshot",
			zap.Int("items", items),
			zap.Int("conversations", convs),
			zap.Int("trade_offers", offers),
		)
	}

	transport, err := newTransport(cfg, logger)
	if err != nil {
		return err
	}

	dispatcher := notifier.NewDispatcher(mem, mem, transport, logger, notifier.DispatcherOptions{
		LookupTimeout: cfg.LookupTimeout,
		SendTimeout:   cfg.SendTimeout,
	})
	router := trigger.NewRouter(dispatcher, logger, trigger.RouterOptions{
		Workers:   cfg.Workers,
		QueueSize: cfg.QueueSize,
	})
	mem.SetOnChange(router.OnChange)

	routerCtx, stopRouter := context.WithCancel(context.Background())
	router.Start(routerCtx)

	handler := api.NewRouter(api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Items:     mem,
		Trades:    mem,
		Scorer:    matching.NewScorer(logger),
		Logger:    logger,
	})

	server := NewServer(ServerConfig{Addr: cfg.Addr}, handler, logger)
	serveErr := server.Start(ctx)

	// Stop accepting changes before draining what is already queued.
	mem.SetOnChange(nil)
	stopRouter()
	router.Wait()
	logger.Info("barterd stopped")
	return serveErr
}

// newTransport picks the push gateway when one is configured and the logging
// transport otherwise.
func newTransport(cfg runConfig, logger *zap.Logger) (types.PushTransport, error) {
	if cfg.PushGatewayURL == "" {
		logger.Warn("No push gateway configured, notifications will only be logged")
		return notifier.NewLogTransport(logger), nil
	}
	gw, err := notifier.NewPushGateway(logger, notifier.PushGatewayConfig{
		URL:               cfg.PushGatewayURL,
		TimeoutSeconds:    cfg.PushTimeoutSeconds,
		AuthToken:         cfg.PushAuthToken,
		RequestsPerSecond: cfg.PushRPS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create push gateway: %w", err)
	}
	return gw, nil
}
