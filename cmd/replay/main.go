// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/relabs-tech/nmea_gga/internal/app"
	"github.com/relabs-tech/nmea_gga/internal/config"
)

func main() {
	configPath := pflag.StringP("config", "c", "gga_config.txt", "Path to the configuration file.")
	input := pflag.StringP("file", "f", "", "File of NMEA sentences to replay (default: built-in GGA sentence).")
	interval := pflag.DurationP("interval", "i", time.Second, "Delay between published sentences.")
	pflag.Parse()

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatal("failed to load config", "path", *configPath, "err", err)
	}
	cfg := config.Get()

	logger := app.NewLogger("gga-replay", cfg.LogLevel)

	var src io.Reader = strings.NewReader(app.DemoSentence)
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			logger.Fatal("failed to open replay file", "err", err)
		}
		defer f.Close()
		src = f
	}
	logger.Info("starting GGA replay (file → MQTT)", "topic", cfg.TopicGPS, "interval", *interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunReplay(ctx, cfg, logger, src, *interval); err != nil {
		logger.Fatal("fatal", "err", err)
	}
}
