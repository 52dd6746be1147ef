package main

import (
	"context"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/dustin/go-humanize"

	httpadapter "fiefdomengine/internal/adapter/http"
	metricsinmem "fiefdomengine/internal/adapter/metrics/inmemory"
	gormrepo "fiefdomengine/internal/adapter/repo/gorm"
	"fiefdomengine/internal/app/action"
	"fiefdomengine/internal/app/timeadvance"
	"fiefdomengine/internal/config"
)

// Config is the process's environment-derived configuration.
type Config struct {
	DSN              string        `env:"FIEFDOMENGINE_DB_DSN,required"`
	MigrationsDir    string        `env:"FIEFDOMENGINE_MIGRATIONS_DIR" envDefault:"./migrations"`
	ConfigDir        string        `env:"FIEFDOMENGINE_CONFIG_DIR" envDefault:"./config"`
	ListenAddr       string        `env:"FIEFDOMENGINE_LISTEN_ADDR" envDefault:":8080"`
	TimeAdvanceEvery time.Duration `env:"FIEFDOMENGINE_TIME_ADVANCE_INTERVAL" envDefault:"5m"`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}

	cache, err := config.Load(cfg.ConfigDir)
	if err != nil {
		log.Fatalf("load game catalogue: %v", err)
	}
	log.Printf("loaded game catalogue from %s (digest %s)", cfg.ConfigDir, cache.Digest)

	db, err := gormrepo.OpenPostgres(cfg.DSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	store := gormrepo.NewFiefdomStore(db)
	txManager := gormrepo.NewTxManager(db)
	metrics := metricsinmem.NewRecorder()

	uc := action.NewUseCase(store, txManager, cache, metrics)
	registry := action.NewRegistry()
	advancer := timeadvance.New(store, txManager, cache)

	startTimeAdvanceLoop(advancer, cfg.TimeAdvanceEvery)

	h := httpadapter.Handler{
		Registry: registry,
		UseCase:  uc,
		KPI:      metrics,
	}

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s)

	log.Printf("fiefdomengine listening on %s", cfg.ListenAddr)
	s.Spin()
}

func startTimeAdvanceLoop(advancer *timeadvance.Advancer, every time.Duration) {
	ticker := time.NewTicker(every)
	go func() {
		for range ticker.C {
			started := time.Now()
			results, err := advancer.AdvanceAll(context.Background())
			if err != nil {
				log.Printf("time advance: %v", err)
				continue
			}
			log.Printf("time advance: %d fiefdoms in %s", len(results), humanize.RelTime(started, time.Now(), "", ""))
		}
	}()
}
