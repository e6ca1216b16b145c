// Command lakehouse runs the medallion pipeline: synthetic data generation,
// raw upload, bronze ingestion, silver cleaning, gold modeling, quality
// gating and the optional warehouse load.
//
// Stages are given as positional arguments and always execute in pipeline
// order:
//
//	lakehouse -config configs/lakehouse.yaml all
//	lakehouse generate bronze silver
//	lakehouse -pushgateway-url http://localhost:9091 gold quality
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lakehouse/internal/config"
	"lakehouse/internal/logs"
	"lakehouse/internal/metrics"
	"lakehouse/internal/metrics/prompush"
	"lakehouse/internal/pipeline"
)

func main() {
	var (
		cfgPath        string
		pushGatewayURL string
		validate       bool
	)
	flag.StringVar(&cfgPath, "config", "configs/lakehouse.yaml", "config YAML path")
	flag.StringVar(&pushGatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides config)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	if validate {
		fmt.Printf("Configuration is valid: %s\n", cfgPath)
		return
	}

	stages := flag.Args()
	if len(stages) == 0 {
		usage()
		os.Exit(2)
	}

	log, err := logs.New(cfg.Env.Log)
	if err != nil {
		fatalf("logger: %v", err)
	}
	log = log.With("service", cfg.Env.ServiceName)

	// Metrics sink: flag overrides config; empty keeps the nop backend.
	gwURL := pushGatewayURL
	if gwURL == "" {
		gwURL = cfg.Metrics.PushgatewayURL
	}
	if gwURL != "" {
		b, err := prompush.NewBackend(cfg.Metrics.Job, gwURL)
		if err != nil {
			log.Warn("metrics backend init failed, metrics disabled", "error", err)
		} else {
			log.Info("metrics enabled", "url", gwURL, "job", cfg.Metrics.Job)
			metrics.SetBackend(b)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := pipeline.New(cfg, log).Run(ctx, stages); err != nil {
		log.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}
	log.Info("pipeline run complete", "stages", strings.Join(stages, ","),
		"duration", time.Since(start).Truncate(time.Millisecond).String())
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] stage...\n\nstages: %s, all\n\nflags:\n",
		os.Args[0], strings.Join(pipeline.Stages(), ", "))
	flag.PrintDefaults()
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
