package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skinbridge/internal/bridge"
	"skinbridge/internal/catalog"
	"skinbridge/internal/config"
	"skinbridge/internal/lcu"
	"skinbridge/internal/live"
	"skinbridge/internal/status"
)

func main() {
	cfg := config.Load()

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Champion catalog, with an on-disk snapshot so selection resolution
	// survives the feed being unreachable at startup.
	var storeOpt []catalog.Option
	store, err := catalog.OpenStore("")
	if err != nil {
		logger.Warn("catalog store unavailable", zap.Error(err))
	} else {
		defer store.Close()
		storeOpt = append(storeOpt, catalog.WithStore(store))
	}
	cat := catalog.New(logger.Named("catalog"), storeOpt...)
	go func() {
		if err := cat.Load(); err != nil {
			logger.Warn("failed to load champion catalog", zap.Error(err))
		}
	}()

	tracker := status.NewTracker(func(s string) {
		logger.Info("status", zap.String("status", s))
	})

	hub := bridge.NewHub(logger.Named("bridge"))
	server := bridge.NewServer(cfg.Relay.Port, cfg.Relay.Version, hub, tracker, logger.Named("bridge"))
	server.OnSetSkin(func(skinID int) {
		logger.Info("viewer skin changed", zap.Int("skinId", skinID))
	})
	if err := server.Start(); err != nil {
		// Either the port is taken by another instance or the bind failed
		// outright; neither is recoverable.
		logger.Fatal("failed to start relay", zap.Error(err))
	}

	connector := lcu.NewConnector(
		cfg.Client.ExecutableName,
		cfg.Client.RetryInterval,
		cfg.Client.ReconnectWait,
		cat, tracker, logger.Named("session"))
	go connector.Run(ctx)

	poller := live.NewPoller(
		cfg.Live.BaseURL,
		cfg.Live.PollInterval,
		cfg.Live.HTTPTimeout,
		tracker, logger.Named("live"))
	go poller.Run(ctx)

	go relaySelections(ctx, connector, hub)
	go relayLiveGame(ctx, poller, hub)

	logger.Info("companion started", zap.Int("relayPort", cfg.Relay.Port))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Stop(shutdownCtx)
}

// relaySelections forwards session connector updates to the bridge
func relaySelections(ctx context.Context, connector *lcu.Connector, hub *bridge.Hub) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-connector.Updates():
			if !update.Active {
				hub.Broadcast(bridge.ChampSelectEndMessage{Type: bridge.TypeChampSelectEnd})
				continue
			}
			hub.Broadcast(bridge.ChampSelectUpdateMessage{
				Type:         bridge.TypeChampSelectUpdate,
				ChampionID:   update.ChampionID,
				ChampionName: update.ChampionName,
				ChampionKey:  strconv.Itoa(update.ChampionKey),
				SkinNum:      update.SkinNum,
				SkinID:       update.SkinID,
			})
		}
	}
}

// relayLiveGame forwards match poller updates to the bridge
func relayLiveGame(ctx context.Context, poller *live.Poller, hub *bridge.Hub) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-poller.Updates():
			if update.Ended {
				hub.Broadcast(bridge.LiveGameEndMessage{
					Type:       bridge.TypeLiveGameEnd,
					GameResult: update.Result,
				})
				continue
			}
			hub.Broadcast(bridge.LiveGameUpdateMessage{
				Type:     bridge.TypeLiveGameUpdate,
				Snapshot: *update.Snapshot,
			})
		}
	}
}

// buildLogger constructs the process logger at the configured level
func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
