// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/nmea_gga/internal/config"
	"github.com/relabs-tech/nmea_gga/internal/gps"
)

// RunGGAProducer opens the GPS serial port, parses GGA sentences, and
// publishes each fix to MQTT until ctx is cancelled.
func RunGGAProducer(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	if cfg.GPSSerialPort == "" {
		return errors.New("GPS_SERIAL_PORT is not set")
	}

	// ---- 1) Connect to MQTT broker ----
	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDGPS)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	logger.Info("connected to MQTT broker", "broker", cfg.MQTTBroker)

	// ---- 2) Open GPS serial port ----
	serialOpts := serial.OpenOptions{
		PortName:              cfg.GPSSerialPort,
		BaudRate:              uint(cfg.GPSBaudRate),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}
	port, err := serial.Open(serialOpts)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.GPSSerialPort, err)
	}
	defer port.Close()
	logger.Info("serial port opened", "port", serialOpts.PortName, "baud", serialOpts.BaudRate)

	// A blocked Read only returns once the port is closed.
	stop := context.AfterFunc(ctx, func() { port.Close() })
	defer stop()

	p := &ggaPublisher{
		pub:    mqttPublisher{client: client},
		cfg:    cfg,
		logger: logger,
	}
	return p.run(ctx, port)
}

// ggaPublisher turns NMEA lines into MQTT messages.
type ggaPublisher struct {
	pub    publisher
	cfg    *config.Config
	logger *log.Logger

	published int
	dropped   int
}

// run reads lines from r until EOF or ctx is done.
func (p *ggaPublisher) run(ctx context.Context, r io.Reader) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if _, herr := p.handleLine(line); herr != nil {
				p.logger.Error("publish failed", "err", herr)
			}
		}
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				p.logger.Info("GGA producer stopped", "published", p.published, "dropped", p.dropped)
				return nil
			}
			return fmt.Errorf("GPS read: %w", err)
		}
	}
}

// handleLine publishes one sentence. It reports whether anything was sent;
// lines that are not GGA, or fail a required checksum, are skipped.
func (p *ggaPublisher) handleLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "$") || !gps.IsGGA(line) {
		return false, nil
	}

	fix, ck := gps.ParseVerified(line)
	if p.cfg.GPSRequireChecksum && !ck.Valid() {
		p.dropped++
		p.logger.Debug("dropping sentence", "checksum", ck, "line", line)
		return false, nil
	}

	payload, err := json.Marshal(fix)
	if err != nil {
		return false, fmt.Errorf("marshal fix: %w", err)
	}
	if err := p.pub.Publish(p.cfg.TopicGPS, true, payload); err != nil {
		return false, fmt.Errorf("publish %s: %w", p.cfg.TopicGPS, err)
	}

	if p.cfg.TopicGPSAltitude != "" {
		alt := strconv.FormatFloat(gps.AltitudeOnly(line), 'f', -1, 64)
		if err := p.pub.Publish(p.cfg.TopicGPSAltitude, true, []byte(alt)); err != nil {
			return false, fmt.Errorf("publish %s: %w", p.cfg.TopicGPSAltitude, err)
		}
	}

	if p.cfg.TopicGPSRecord != "" {
		rec, err := fix.Record().MarshalBinary()
		if err != nil {
			return false, fmt.Errorf("marshal record: %w", err)
		}
		if err := p.pub.Publish(p.cfg.TopicGPSRecord, true, rec); err != nil {
			return false, fmt.Errorf("publish %s: %w", p.cfg.TopicGPSRecord, err)
		}
	}

	p.published++
	p.logger.Debug("published GGA fix", "checksum", ck, "fix_type", fix.FixType, "satellites", fix.Satellites)
	return true, nil
}
