package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aatuh/ulid-toolkit/bootstrap"
	"github.com/aatuh/ulid-toolkit/clock"
	"github.com/aatuh/ulid-toolkit/config"
	"github.com/aatuh/ulid-toolkit/endpoints"
	"github.com/aatuh/ulid-toolkit/entropy"
	"github.com/aatuh/ulid-toolkit/envvar"
	"github.com/aatuh/ulid-toolkit/health"
	"github.com/aatuh/ulid-toolkit/idgen"
	"github.com/aatuh/ulid-toolkit/logzap"
	metricsmw "github.com/aatuh/ulid-toolkit/middleware/metrics"
	"github.com/aatuh/ulid-toolkit/ports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	env := envvar.New()
	if files := env.GetListOr("ENV_FILES", nil); len(files) > 0 {
		env.LoadEnvFiles(files)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	log, err := logzap.NewWithLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	clk := clock.NewSystemClock()
	src := entropy.NewCryptoSource()

	var gen ports.IDGen
	if cfg.Monotonic {
		gen = idgen.NewMonotonicWith(clk, src)
	} else {
		gen = idgen.NewULIDGenWith(clk, src)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	rec := metricsmw.NewPrometheusRecorder(reg, nil)

	hm := health.New()
	hm.RegisterChecker(health.NewBasicChecker())
	hm.RegisterChecker(health.NewEntropyChecker(src))
	hm.RegisterChecker(health.NewClockChecker(clk))

	r := bootstrap.NewDefaultRouter(log, bootstrap.RouterOptions{Metrics: rec, CORSOrigins: cfg.CORSOrigins})
	bootstrap.MountSystemEndpoints(r, health.NewHandler(hm), reg)
	endpoints.NewHandler(endpoints.Options{
		Generator: gen,
		Source:    src,
		Metrics:   rec,
		Log:       log,
		MaxBatch:  cfg.MaxBatch,
	}).RegisterRoutes(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("ulidd configured", "env", cfg.Env, "monotonic", cfg.Monotonic, "max_batch", cfg.MaxBatch)
	return bootstrap.StartServer(ctx, cfg.Addr, r, log)
}
