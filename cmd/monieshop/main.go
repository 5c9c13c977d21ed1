package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/monielab/monieshop-analytics/internal/config"
	"github.com/monielab/monieshop-analytics/internal/core/metrics"
	"github.com/monielab/monieshop-analytics/internal/ingest"
	"github.com/monielab/monieshop-analytics/internal/report"
	"github.com/monielab/monieshop-analytics/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	datasetPath := flag.String("dataset", "", "Dataset directory (overrides dataset.path)")
	format := flag.String("format", "", "Report format: text, json or yaml (overrides report.format)")
	serve := flag.Bool("serve", false, "Serve the computed report over HTTP after ingesting")
	flag.Parse()

	// 0. Initialize Logger. The report itself goes to stdout, so logs
	// go to stderr to keep piped output clean.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *datasetPath != "" {
		cfg.Dataset.Path = *datasetPath
	}
	if *format != "" {
		cfg.Report.Format = *format
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler → triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// 2. Ingest the dataset
	engine := metrics.NewEngine()
	res, err := ingest.Load(ctx, cfg.Dataset.Path, engine, ingest.Options{
		Workers:       cfg.Ingest.Workers,
		SkipMalformed: cfg.Ingest.SkipMalformed,
	})
	if err != nil {
		slog.Error("Ingest failed", "error", err)
		os.Exit(1)
	}

	// 3. Derive and render the report
	snap, err := engine.Report()
	if err != nil {
		slog.Error("No report to derive", "error", err, "dir", cfg.Dataset.Path)
		os.Exit(1)
	}
	view := report.NewView(snap, res.RunID)
	if err := report.Write(os.Stdout, cfg.Report.Format, view); err != nil {
		slog.Error("Failed to render report", "error", err)
		os.Exit(1)
	}

	if !*serve {
		return
	}

	// 4. Publish the snapshot over HTTP until interrupted
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode)
	srv.SetView(view)
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
