// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/nmea_gga/internal/config"
	"github.com/relabs-tech/nmea_gga/internal/gps"
)

// RunWeb serves the latest GPS fix over HTTP and WebSocket until ctx is
// cancelled.
func RunWeb(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	hub := newFixHub(logger)

	// 1) Connect to MQTT broker
	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDWeb)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	logger.Info("connected to MQTT broker", "broker", cfg.MQTTBroker)

	// 2) Subscribe to GPS topic and update the hub on each message
	err = subscribe(client, cfg.TopicGPS, func(payload []byte) {
		var f gps.Fix
		if err := json.Unmarshal(payload, &f); err != nil {
			logger.Error("MQTT payload unmarshal error", "err", err)
			return
		}
		hub.update(f)
	})
	if err != nil {
		return err
	}
	logger.Info("subscribed", "topic", cfg.TopicGPS)

	// 3) HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WebServerPort),
		Handler:           hub.routes(cfg.WebStaticDir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hub.close()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// fixHub keeps the latest fix and fans updates out to WebSocket clients.
type fixHub struct {
	logger *log.Logger

	mu      sync.RWMutex
	last    gps.Fix
	have    bool
	clients map[chan gps.Fix]struct{}
	done    chan struct{}
}

func newFixHub(logger *log.Logger) *fixHub {
	return &fixHub{
		logger:  logger,
		clients: make(map[chan gps.Fix]struct{}),
		done:    make(chan struct{}),
	}
}

func (h *fixHub) update(f gps.Fix) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = f
	h.have = true
	for ch := range h.clients {
		select {
		case ch <- f:
		default:
			// slow client, it will catch up on the next fix
		}
	}
}

func (h *fixHub) latest() (gps.Fix, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last, h.have
}

func (h *fixHub) subscribe() (chan gps.Fix, func()) {
	ch := make(chan gps.Fix, 8)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
	}
}

// close ends every open WebSocket stream.
func (h *fixHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

func (h *fixHub) routes(staticDir string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gps", h.handleFix)
	mux.HandleFunc("/api/gps/record", h.handleRecord)
	mux.HandleFunc("/ws/gps", h.handleStream)
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	return mux
}

// handleFix serves the latest fix as JSON.
func (h *fixHub) handleFix(w http.ResponseWriter, r *http.Request) {
	f, ok := h.latest()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		h.logger.Error("json encode error", "err", err)
	}
}

// handleRecord serves the latest fix in its fixed binary layout.
func (h *fixHub) handleRecord(w http.ResponseWriter, r *http.Request) {
	f, ok := h.latest()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	data, err := f.Record().MarshalBinary()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleStream pushes the latest fix, then every new one, as JSON frames.
func (h *fixHub) handleStream(w http.ResponseWriter, r *http.Request) {
	ch, unsubscribe := h.subscribe()
	defer unsubscribe()
	initial, have := h.latest()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// Drain client frames so close messages are noticed.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if have {
		if err := conn.WriteJSON(initial); err != nil {
			return
		}
	}

	for {
		select {
		case f := <-ch:
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(f); err != nil {
				h.logger.Debug("websocket write failed", "err", err)
				return
			}
		case <-gone:
			return
		case <-h.done:
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}
