package main

import (
	"accessible-tiles/internal/config"
	"accessible-tiles/internal/engine"
	"accessible-tiles/internal/sandbox"
	"accessible-tiles/internal/server"
	"accessible-tiles/internal/speech"
	"accessible-tiles/internal/timer"
	"accessible-tiles/internal/tracker"
	"accessible-tiles/internal/tracker/providers"
	"accessible-tiles/internal/version"
	"accessible-tiles/pkg/api"
	"accessible-tiles/pkg/logger"
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Флаги поверх конфига из окружения
	var autoload bool
	flag.BoolVar(&autoload, "autoload", true, "Send SAVE_LOADED at start (no game bridge attached)")
	flag.Parse()

	logger.Log.Info("Starting accessible tiles...")
	logger.Log.Info(version.String())

	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}

	// 2. Ассеты
	worldMap, err := sandbox.LoadMap(cfg.MapPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load map")
	}

	points, err := providers.LoadSpecialPoints(cfg.SpecialPointsPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Log.WithField("path", cfg.SpecialPointsPath).Warn("No special points file, continuing without it")
	case err != nil:
		logger.Log.WithError(err).Fatal("Failed to load special points")
	}

	// 3. Ядро: один логический поток на мир, движение и трекер
	hub := speech.NewHub()
	loop := timer.NewLoop(256)

	world, err := sandbox.NewWorld(worldMap, sandbox.Deps{
		Output:       hub,
		Sounds:       hub,
		Clock:        loop,
		StepInterval: cfg.StepCooldown,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build world")
	}

	svc, err := engine.NewService(cfg, engine.Deps{
		Host:   world,
		Output: hub,
		// Порядок важен: первый провайдер побеждает при совпадении имен
		Providers: []tracker.Provider{
			providers.NewExternal(world, world),
			providers.NewSpecialPoints(points, world, world),
			providers.NewEntities(world),
		},
		Scheduler: loop,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build engine")
	}
	runner := engine.NewRunner(loop, svc, cfg.TickInterval())

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runner.Run(ctx)
	if autoload {
		runner.Submit(api.ClientCommand{Action: api.ActionSaveLoaded})
	}

	// 4. Запуск сервера
	srv := server.New(runner, hub, cfg.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Fatal("Server start error")
	}

	logger.Log.Info("Done.")
}
