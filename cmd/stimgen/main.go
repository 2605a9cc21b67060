package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/renderstim/stimgen/internal/api"
	"github.com/renderstim/stimgen/internal/assets"
	"github.com/renderstim/stimgen/internal/config"
	"github.com/renderstim/stimgen/internal/dataset"
	"github.com/renderstim/stimgen/internal/db"
	"github.com/renderstim/stimgen/internal/latents"
	"github.com/renderstim/stimgen/internal/logging"
	"github.com/renderstim/stimgen/internal/render"
)

var Version = "0.1.0"

func main() {
	paramsFile := flag.String("sample", "", "sample one dataset from a YAML parameter file, write scene configs as JSON to stdout, and exit")
	numScenes := flag.Int("n", 0, "override num_scenes when using -sample")
	flag.Parse()

	if *paramsFile != "" {
		if err := runSample(*paramsFile, *numScenes); err != nil {
			log.Fatalf("fatal error: %v", err)
		}
		return
	}

	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

// runSample is the one-shot mode: no database, no server, just the sampler.
func runSample(paramsFile string, numScenes int) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	params, err := latents.LoadParameters(paramsFile)
	if err != nil {
		return err
	}
	if numScenes > 0 {
		params.NumScenes = numScenes
	}

	logger := logging.NewLogger(cfg.LogLevel())
	registry := assets.NewFileRegistry(cfg.AssetsDir(), logger)
	sampler := latents.NewSampler(registry, logger)

	scenes, err := sampler.SampleDataset(params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(scenes)
}

func run() error {
	startTime := time.Now()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting stimgen agent", "version", Version, "data_dir", cfg.DataDir(), "assets_dir", cfg.AssetsDir())

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := dataset.NewRepository(database.Conn())

	deviceID, err := ensureDeviceID(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure device ID: %w", err)
	}

	authToken, err := ensureAuthToken(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║                    STIMGEN AGENT v0.1.0                   ║")
	fmt.Println("╠═══════════════════════════════════════════════════════════╣")
	fmt.Printf("║  API URL:    http://127.0.0.1:%-27d ║\n", cfg.Port())
	fmt.Printf("║  Auth Token: %-45s ║\n", authToken)
	fmt.Printf("║  Device ID:  %-45s ║\n", deviceID[:16]+"...")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	registry := assets.NewFileRegistry(cfg.AssetsDir(), logger)
	sampler := latents.NewSampler(registry, logger)
	datasetSvc := dataset.NewService(repo, sampler, logger)

	var renderClient render.Client
	if cfg.RendererURL() != "" {
		renderClient = render.NewHTTPClient(cfg.RendererURL(), cfg.RendererToken(), cfg.RendererTimeout(), logger)
		logger.Info("render collaborator configured", "base_url", cfg.RendererURL())
	} else {
		renderClient = render.NewStubClient(logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := dataset.NewRunner(repo, renderClient, logger)
	go runner.Start(ctx)

	apiServer := api.NewServer(api.ServerConfig{
		Port:           cfg.Port(),
		DatasetService: datasetSvc,
		Repository:     repo,
		Runner:         runner,
		Assets:         registry,
		Logger:         logger,
		StartTime:      startTime,
		DeviceID:       deviceID,
	})

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig)

	logger.Info("initiating graceful shutdown")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func ensureDeviceID(repo dataset.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "device_id")
	if err == nil && existing != "" {
		return existing, nil
	}

	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return "", err
	}
	deviceID := hex.EncodeToString(idBytes)

	if err := repo.SetConfig(ctx, "device_id", deviceID); err != nil {
		return "", err
	}

	return deviceID, nil
}

func ensureAuthToken(repo dataset.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "auth_token")
	if err == nil && existing != "" {
		return existing, nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := repo.SetConfig(ctx, "auth_token", token); err != nil {
		return "", err
	}

	return token, nil
}
