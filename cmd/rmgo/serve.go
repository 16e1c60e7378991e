package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/rmgo/internal/config"
	"github.com/rgehrsitz/rmgo/internal/server"
	"github.com/rgehrsitz/rmgo/internal/store"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over a JSON HTTP API",
		Long: `Serve the calculators over HTTP.

Configuration is read from the environment: RMGO_ADDR, RMGO_RULES_FILE,
RMGO_CACHE_TTL, RMGO_MAX_BODY_BYTES, RMGO_DEBUG, DATABASE_URL (Postgres
profile store) and REDIS_ADDR (response cache). Without DATABASE_URL or
REDIS_ADDR the server keeps profiles and cached responses in memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadServerConfig()
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			if rules, _ := cmd.Flags().GetString("rules"); rules != "" {
				cfg.RulesFile = rules
			}
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				cfg.Debug = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}
	cmd.Flags().String("addr", "", "Listen address, overrides RMGO_ADDR")
	return cmd
}

func runServer(ctx context.Context, cfg config.ServerConfig) error {
	log := newSlog(os.Stderr, cfg.Debug)
	engine, err := buildEngine(cfg.RulesFile, cfg.Debug, os.Stderr)
	if err != nil {
		return err
	}

	srv := server.New(engine, log)
	srv.CacheTTL = cfg.CacheTTL
	srv.MaxBodyBytes = cfg.MaxBodyBytes

	if cfg.DatabaseURL != "" {
		db, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		profiles, err := store.NewPostgresProfileStore(ctx, db)
		if err != nil {
			db.Close()
			return err
		}
		defer profiles.Close()
		srv.Profiles = profiles
		log.Info("using postgres profile store")
	}

	if cfg.RedisAddr != "" {
		cache := store.NewRedisCache(cfg.RedisAddr)
		if err := cache.Ping(ctx); err != nil {
			_ = cache.Close()
			return fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		defer cache.Close()
		srv.Cache = cache
		log.Info("using redis cache", "addr", cfg.RedisAddr)
	}

	log.Info("listening", "addr", cfg.Addr, "rules", engine.Rules().Name)
	return srv.ListenAndServe(ctx, cfg.Addr)
}
