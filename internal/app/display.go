// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/nmea_gga/internal/config"
	"github.com/relabs-tech/nmea_gga/internal/gps"
)

const (
	displayWidth  = 128
	displayHeight = 64
	lineHeight    = 13
)

// panel is the part of *ssd1306.Dev the display loop draws through.
type panel interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Bounds() image.Rectangle
}

// displayData holds the latest fix received over MQTT.
type displayData struct {
	mu   sync.RWMutex
	fix  gps.Fix
	have bool
}

func (d *displayData) set(f gps.Fix) {
	d.mu.Lock()
	d.fix, d.have = f, true
	d.mu.Unlock()
}

func (d *displayData) get() (gps.Fix, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fix, d.have
}

// RunDisplay shows the latest GPS fix on an SSD1306 OLED until ctx is
// cancelled.
func RunDisplay(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	defer dev.Halt()
	logger.Info("display initialized")

	if err := dev.Draw(dev.Bounds(), renderLines("GGA monitor", "Looking for", "sats"), image.Point{}); err != nil {
		logger.Error("error showing splash", "err", err)
	}

	data := &displayData{}

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDDisplay)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	logger.Info("connected to MQTT broker", "broker", cfg.MQTTBroker)

	err = subscribe(client, cfg.TopicGPS, func(payload []byte) {
		var f gps.Fix
		if err := json.Unmarshal(payload, &f); err != nil {
			logger.Error("gps unmarshal error", "err", err)
			return
		}
		data.set(f)
	})
	if err != nil {
		return err
	}

	return displayLoop(ctx, dev, data, time.Duration(cfg.DisplayUpdateInterval)*time.Millisecond, logger)
}

// displayLoop redraws p on every tick until ctx is done.
func displayLoop(ctx context.Context, p panel, data *displayData, interval time.Duration, logger *log.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("starting update loop", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			f, have := data.get()
			if err := p.Draw(p.Bounds(), renderLines(fixLines(f, have)...), image.Point{}); err != nil {
				logger.Error("error updating display", "err", err)
			}
		}
	}
}

// fixLines lays a fix out as four display lines of at most 18 characters.
func fixLines(f gps.Fix, have bool) []string {
	if !have {
		return []string{"", "GPS Position", "Waiting..."}
	}

	alt := notAvailable
	if !math.IsNaN(f.Altitude) {
		alt = fmt.Sprintf("%.0fm", f.Altitude)
	}
	return []string{
		"Lat " + shortCoordinate(f.Latitude, "N", "S"),
		"Lon " + shortCoordinate(f.Longitude, "E", "W"),
		"Alt " + alt,
		fmt.Sprintf("Sat %s Fix %s", formatInt(f.Satellites), formatInt(f.FixType)),
	}
}

func shortCoordinate(v float64, pos, neg string) string {
	if math.IsNaN(v) {
		return notAvailable
	}
	if v < 0 {
		return fmt.Sprintf("%.4f%s", -v, neg)
	}
	return fmt.Sprintf("%.4f%s", v, pos)
}

// renderLines draws up to four lines of text into a blank frame.
func renderLines(lines ...string) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, displayWidth, displayHeight))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		if i >= displayHeight/lineHeight {
			break
		}
		drawer.Dot = fixed.P(0, (i+1)*lineHeight)
		drawer.DrawString(line)
	}
	return img
}
