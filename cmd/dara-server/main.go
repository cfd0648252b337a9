package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dara-analytics/dara"
	"github.com/dara-analytics/dara/internal/version"
)

func customUsage() {
	fmt.Fprintf(os.Stderr, "DARA analytics API server (version %s)\n\n", version.Version)
	fmt.Fprintf(os.Stderr, "Usage: dara-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnvironment variables (DARA_ADDR, PORT, DARA_DATA_DIR, DARA_LOG_LEVEL, ...) override the config file.\n")
}

func main() {
	versionFlag := flag.Bool("v", false, "Print version and exit")
	flag.BoolVar(versionFlag, "version", false, "Print version and exit") // alias
	configPath := flag.String("config", "", "Configuration file (.json, .yaml, .yml or .toml)")
	addr := flag.String("addr", "", "Listen address, overrides the configuration")
	dataDir := flag.String("data-dir", "", "Dataset directory, overrides the configuration")
	preload := flag.Bool("preload", true, "Load every dataset before accepting requests")

	//nolint:reassign // Standard Go pattern for customizing flag usage message
	flag.Usage = customUsage

	flag.Parse()

	if *versionFlag {
		fmt.Print(version.Info().String())
		return
	}

	if err := run(*configPath, *addr, *dataDir, *preload); err != nil {
		fmt.Fprintf(os.Stderr, "dara-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr, dataDir string, preload bool) error {
	cfg, err := dara.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dataDir != "" {
		cfg.Datasets.DataDir = dataDir
	}

	svc, err := dara.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if preload {
		if err := svc.Preload(ctx); err != nil {
			return fmt.Errorf("loading datasets: %w", err)
		}
	}
	return svc.ListenAndServe(ctx)
}
