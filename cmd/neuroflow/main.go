package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/neuroflow/internal/config"
	"github.com/sandeepkv93/neuroflow/internal/gateway"
	"github.com/sandeepkv93/neuroflow/internal/logging"
	"github.com/sandeepkv93/neuroflow/internal/model"
	"github.com/sandeepkv93/neuroflow/internal/persist"
	"github.com/sandeepkv93/neuroflow/internal/scheduler"
	"github.com/sandeepkv93/neuroflow/internal/state"
	"github.com/sandeepkv93/neuroflow/internal/storage"
)

var Version = "dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "neuroflow",
		Short:   "NeuroFlow - a calm terminal companion for ADHD brains",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), configPath)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultFile+")")

	rootCmd.AddCommand(tuiCmd(&configPath))
	rootCmd.AddCommand(focusCmd(&configPath))
	rootCmd.AddCommand(breatheCmd(&configPath))
	rootCmd.AddCommand(breakdownCmd(&configPath))
	rootCmd.AddCommand(organizeCmd(&configPath))
	rootCmd.AddCommand(stateCmd(&configPath))
	rootCmd.AddCommand(configCmd(&configPath))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "neuroflow failed: %v\n", err)
		os.Exit(1)
	}
}

// runtime is everything a command needs, opened in dependency order and
// closed in reverse.
type runtime struct {
	cfg     config.RuntimeConfig
	logger  *slog.Logger
	sync    *persist.Sync
	app     *state.App
	engine  *scheduler.Engine
	gateway *gateway.Adapter
	closers []func() error
}

func openRuntime(ctx context.Context, configPath string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.OpenFile(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	rt := &runtime{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	kv, closeStore, err := storage.Open(storage.Backend(cfg.StorageBackend), cfg.StoragePath)
	if err != nil {
		logger.Warn("storage unavailable, keeping state in memory", "backend", cfg.StorageBackend, "error", err)
		kv = storage.NewMemoryStore()
	}
	rt.closers = append(rt.closers, closeStore)
	if cfg.StorageQuotaBytes > 0 {
		kv = storage.Quota{KV: kv, Limit: cfg.StorageQuotaBytes}
	}

	rt.sync = persist.NewSync(kv, nil, logger)
	snap := rt.sync.Hydrate(ctx).Apply(model.DefaultSnapshot())
	rt.app = state.New(snap, func(s model.Snapshot) {
		rt.sync.Persist(context.Background(), s)
	})

	rt.engine = scheduler.NewEngine()
	rt.engine.Start()
	rt.closers = append(rt.closers, func() error {
		rt.engine.Stop()
		if late := rt.engine.Late(); late > 0 {
			logger.Warn("ticks ran late", "periods", late)
		}
		return nil
	})

	if cfg.HasAPIKey() {
		client := gateway.NewGeminiClient(cfg.APIKey,
			gateway.WithBaseURL(cfg.GatewayBaseURL),
			gateway.WithModel(cfg.GatewayModel),
		)
		rt.gateway = gateway.NewAdapter(client, cfg.GatewayTimeout, logger)
	}

	logger.Info("runtime ready",
		"storage", cfg.StorageBackend,
		"tasks", len(snap.Tasks),
		"assistant", rt.gateway != nil,
	)
	return rt, nil
}

func (r *runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
