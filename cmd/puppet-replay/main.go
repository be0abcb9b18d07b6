package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/plus3/puppet/config"
	"github.com/plus3/puppet/logging"
	"github.com/plus3/puppet/replay"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file for clip names and speed.")
	logLevel := flag.String("log-level", "warn", "Log level.")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: puppet-replay [-config file] [-log-level level] script.yaml...")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	logger, err := logging.New(logging.Config{Level: *logLevel})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Sync(logger)

	failed := 0
	for _, path := range flag.Args() {
		script, err := replay.LoadScript(path)
		if err != nil {
			logger.Fatal("load script", zap.Error(err))
		}

		result, err := replay.Run(script, replay.Options{
			Names:  cfg.ClipNames(),
			Speed:  cfg.Player.Speed,
			Logger: logger.With(zap.String("script", script.Name)),
		})
		if err != nil {
			logger.Fatal("run script", zap.String("path", path), zap.Error(err))
		}

		if err := result.Report(os.Stdout); err != nil {
			logger.Fatal("write report", zap.Error(err))
		}
		if err := result.Check(script.Expect); err != nil {
			failed++
			fmt.Printf("\nFAIL %s\n%v\n", script.Name, err)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
