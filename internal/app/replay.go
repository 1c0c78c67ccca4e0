// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/relabs-tech/nmea_gga/internal/config"
)

// RunReplay publishes the sentences read from r to MQTT, one per interval,
// cycling until ctx is cancelled. It stands in for a GPS receiver on benches
// without a serial port.
func RunReplay(ctx context.Context, cfg *config.Config, logger *log.Logger, r io.Reader, interval time.Duration) error {
	lines, err := readSentences(r)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return errors.New("replay: no sentences to publish")
	}

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDGPS)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	logger.Info("connected to MQTT broker", "broker", cfg.MQTTBroker, "sentences", len(lines))

	p := &ggaPublisher{
		pub:    mqttPublisher{client: client},
		cfg:    cfg,
		logger: logger,
	}
	return p.replay(ctx, lines, interval)
}

// readSentences returns the non-blank lines of r.
func readSentences(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func (p *ggaPublisher) replay(ctx context.Context, lines []string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; ; i = (i + 1) % len(lines) {
		select {
		case <-ctx.Done():
			p.logger.Info("replay stopped", "published", p.published, "dropped", p.dropped)
			return nil
		case <-ticker.C:
		}
		if _, err := p.handleLine(lines[i]); err != nil {
			p.logger.Error("publish failed", "err", err)
		}
	}
}
