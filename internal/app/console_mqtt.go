// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/relabs-tech/nmea_gga/internal/config"
	"github.com/relabs-tech/nmea_gga/internal/gps"
)

// RunConsoleMQTT subscribes to the GPS topic and prints every fix to stdout
// until ctx is cancelled.
func RunConsoleMQTT(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDConsole)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	logger.Info("connected to MQTT broker", "broker", cfg.MQTTBroker)

	handler := consoleHandler(os.Stdout, logger)
	if err := subscribe(client, cfg.TopicGPS, handler); err != nil {
		return err
	}
	logger.Info("subscribed", "topic", cfg.TopicGPS)

	<-ctx.Done()
	logger.Info("console: shutting down")
	return nil
}

// consoleHandler decodes a JSON fix and prints its report to w.
func consoleHandler(w io.Writer, logger *log.Logger) func([]byte) {
	return func(payload []byte) {
		var f gps.Fix
		if err := json.Unmarshal(payload, &f); err != nil {
			logger.Error("gps unmarshal error", "err", err)
			return
		}
		fmt.Fprintln(w, formatFix(f))
	}
}
