package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker          string
	MQTTClientIDGPS     string
	MQTTClientIDConsole string
	MQTTClientIDWeb     string
	MQTTClientIDDisplay string

	// Topics
	TopicGPS         string // JSON fix
	TopicGPSAltitude string // altitude only, empty disables
	TopicGPSRecord   string // 48-byte binary record, empty disables

	// GPS
	GPSSerialPort      string
	GPSBaudRate        int
	GPSRequireChecksum bool

	// Web Server
	WebServerPort int
	WebStaticDir  string

	// Display
	DisplayUpdateInterval int // milliseconds

	// Logging: debug, info, warn, error
	LogLevel string
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: only reachable through InitGlobal and Get.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: write lock for initialization, read lock for Get().
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns a Config with every optional value filled in.
func Default() *Config {
	return &Config{
		MQTTClientIDGPS:       "gga-producer",
		MQTTClientIDConsole:   "gga-console",
		MQTTClientIDWeb:       "gga-web",
		MQTTClientIDDisplay:   "gga-display",
		TopicGPS:              "inertial/gps",
		GPSSerialPort:         "/dev/serial0",
		GPSBaudRate:           9600,
		WebServerPort:         8080,
		WebStaticDir:          "web",
		DisplayUpdateInterval: 500,
		LogLevel:              "info",
	}
}

// Load reads the configuration file and returns a Config struct.
// Files ending in .yaml or .yml are read as YAML, anything else as KEY=VALUE lines.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = cfg.readYAML(file)
	default:
		err = cfg.readKeyValue(file)
	}
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readKeyValue parses KEY=VALUE lines; blank lines and # comments are skipped.
func (c *Config) readKeyValue(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := c.setValue(key, value); err != nil {
			return fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// readYAML accepts a flat mapping using the same keys as the KEY=VALUE format:
//
//	MQTT_BROKER: tcp://localhost:1883
//	GPS_BAUD_RATE: 9600
func (c *Config) readYAML(r io.Reader) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("config must be a mapping of KEY: value")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("config line %d: %q must be a scalar", k.Line, k.Value)
		}
		if err := c.setValue(k.Value, v.Value); err != nil {
			return fmt.Errorf("config line %d: %w", k.Line, err)
		}
	}
	return nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_GPS":
		c.MQTTClientIDGPS = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_GPS":
		c.TopicGPS = value
	case "TOPIC_GPS_ALTITUDE":
		c.TopicGPSAltitude = value
	case "TOPIC_GPS_RECORD":
		c.TopicGPSRecord = value

	// GPS
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		if rate <= 0 {
			return fmt.Errorf("GPS_BAUD_RATE must be positive, got %d", rate)
		}
		c.GPSBaudRate = rate
	case "GPS_REQUIRE_CHECKSUM":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_REQUIRE_CHECKSUM %q: %w", value, err)
		}
		c.GPSRequireChecksum = v

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("WEB_SERVER_PORT must be 1-65535, got %d", port)
		}
		c.WebServerPort = port
	case "WEB_STATIC_DIR":
		c.WebStaticDir = value

	// Display
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("DISPLAY_UPDATE_INTERVAL must be positive, got %d", interval)
		}
		c.DisplayUpdateInterval = interval

	// Logging
	case "LOG_LEVEL":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(value)
		default:
			return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", value)
		}

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.TopicGPS == "" {
		return fmt.Errorf("TOPIC_GPS is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
