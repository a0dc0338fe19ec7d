package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fzft/go-probeset/cmd"
	"github.com/fzft/go-probeset/config"
	"github.com/fzft/go-probeset/log"
	"go.uber.org/zap"
)

var CLI struct {
	Config          string           `short:"c" help:"Configuration file path" type:"path"`
	Verbose         bool             `short:"v" help:"Enable debug logging, including every rehash"`
	InitialCapacity int              `help:"Override the set's initial capacity (power of two)"`
	Version         kong.VersionFlag `help:"Print version and exit"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("probeset"),
		kong.Description("Interactive shell around an open-addressed hash set."),
		kong.Vars{"version": versionString()},
	)

	if err := log.InitLogger(CLI.Verbose); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Logger.Sync()

	if err := config.LoadEnvFiles(); err != nil {
		log.Logger.Debug("no .env file loaded", zap.Error(err))
	}

	cfg, err := config.Load(CLI.Config, config.WithInitialCapacity(CLI.InitialCapacity))
	if err != nil {
		log.Logger.Error("failed to load configuration", zap.Error(err))
		os.Exit(1)
	}

	sh, err := cmd.NewShell(cfg, os.Stdout, log.Logger)
	if err != nil {
		log.Logger.Error("failed to create set", zap.Error(err))
		os.Exit(1)
	}
	defer sh.Close()

	if err := sh.Run(os.Stdin); err != nil {
		log.Logger.Error("shell stopped", zap.Error(err))
		os.Exit(1)
	}
}
