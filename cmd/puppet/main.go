package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/anim"
	"github.com/plus3/puppet/config"
	"github.com/plus3/puppet/control"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/ecs/debugui"
	debugui_ebiten "github.com/plus3/puppet/ecs/debugui/ebiten"
	"github.com/plus3/puppet/frontend"
	"github.com/plus3/puppet/logging"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	debug := flag.Bool("debug", false, "Show the ImGui debug windows.")
	logLevel := flag.String("log-level", "", "Override the configured log level.")
	watch := flag.Bool("watch", false, "Reload the player speed when the config file changes.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *debug {
		cfg.DebugUI = true
	}

	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Sync(logger)

	logger.Info("starting",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("tps", cfg.Tick.Rate),
		zap.Float32("speed", cfg.Player.Speed),
		zap.Bool("debug_ui", cfg.DebugUI),
	)

	lib, err := anim.DefaultLibrary()
	if err != nil {
		logger.Fatal("load clip library", zap.Error(err))
	}
	catalog, err := control.LoadClipCatalog(lib, cfg.ClipNames())
	if err != nil {
		logger.Fatal("load clip catalog", zap.Error(err))
	}
	logger.Info("clip catalog ready", zap.Strings("clips", cfg.Clips))

	var ui *debugui_ebiten.ImguiBackend
	if cfg.DebugUI {
		ui = debugui_ebiten.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	}
	frontend.ApplyWindow(cfg.Window, cfg.Tick.Rate)

	registry := ecs.NewComponentRegistry()
	control.Register(registry)
	debugui.Register(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	control.Setup(storage, cfg.Player.Name, catalog)

	input := frontend.NewInput(cfg.Window.Width, cfg.Window.Height)
	systems := control.Install(scheduler, control.Options{
		Source:  input,
		Speed:   cfg.Player.Speed,
		Library: lib,
		Scene:   cfg.Player.Scene,
		Logger:  logger,
	})

	game := frontend.NewGame(scheduler, cfg.Tick.Rate)
	game.Input = input
	game.Resolver = systems.Resolver
	game.Renderer = frontend.NewRenderer(storage, lib)
	game.Logger = logger

	if ui != nil {
		debugui.Install(scheduler)
		input.Capture = ecs.NewSingleton[debugui.ImguiInputState](storage)
		frontend.SpawnInspector(storage, func() float32 { return systems.Resolver.Speed })
		game.UI = ui
	}

	if *watch && *configPath != "" {
		watcher, err := config.Watch(*configPath)
		if err != nil {
			logger.Fatal("watch config", zap.Error(err))
		}
		defer watcher.Close()
		go func() {
			for err := range watcher.Errors {
				logger.Warn("config reload failed", zap.Error(err))
			}
		}()
		game.Reloads = watcher.Updates
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
	logger.Info("stopped", zap.Uint64("ticks", scheduler.Tick()))
}
