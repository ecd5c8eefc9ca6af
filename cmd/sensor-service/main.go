package main

import (
	"context"
	"errors"
	netHttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xyon15/Hardware-Monitor/internal/config"
	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/hardware/sysfs"
	"github.com/Xyon15/Hardware-Monitor/internal/logger"
	"github.com/Xyon15/Hardware-Monitor/internal/metrics"
	"github.com/Xyon15/Hardware-Monitor/internal/transport/rest"
	"github.com/Xyon15/Hardware-Monitor/internal/transport/websocket"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic("FATAL: " + err.Error())
	}
	log := logger.New(cfg)

	provider := sysfs.New(log)
	extractor := metrics.NewExtractor()
	reader := metrics.NewCachedReader(provider, extractor, cfg, log)

	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	broadcaster := metrics.NewBroadcaster(cfg.BroadcastInterval, reader, func(s domain.Snapshot) {
		hub.Emit("metrics.updated", s)
	}, log)
	go broadcaster.Start(ctx)

	wsHandler := websocket.NewHandler(hub, cfg, log)
	metricsHandler := rest.NewMetricsHandler(reader)
	sensorsHandler := rest.NewSensorsHandler(provider, log)

	router := rest.NewRouter(cfg, &rest.RouterDeps{
		Metrics: metricsHandler,
		Sensors: sensorsHandler,
		WS:      wsHandler,
		Reader:  reader,
	})

	srv := rest.NewServer(router, cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, netHttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown error", "error", err)
		}

	case err := <-errCh:
		log.Error("http server error", "error", err)
	}

	log.Info("server stopped")
}
