// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/relabs-tech/nmea_gga/internal/app"
	"github.com/relabs-tech/nmea_gga/internal/config"
)

func main() {
	configPath := pflag.StringP("config", "c", "gga_config.txt", "Path to the configuration file.")
	pflag.Parse()

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatal("failed to load config", "path", *configPath, "err", err)
	}
	cfg := config.Get()

	logger := app.NewLogger("gga-web", cfg.LogLevel)
	logger.Info("starting GGA web server (MQTT subscriber)", "topic", cfg.TopicGPS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunWeb(ctx, cfg, logger); err != nil {
		logger.Fatal("fatal", "err", err)
	}
}
