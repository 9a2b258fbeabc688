package main

import (
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/soocke/viewfinder-go/app"
	"github.com/soocke/viewfinder-go/config"
)

func main() {
	fs := pflag.NewFlagSet("viewfinder", pflag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultPath(), "path to the JSON config file")
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgPath, fs)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load", "path", *cfgPath, "error", err)
	}

	application := app.NewApp("Viewfinder", cfg, *cfgPath, logger)
	application.Start()
}
