package client

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Config holds configuration for dialing a session.
type Config struct {
	// HandshakeTimeout bounds the WebSocket dial and upgrade.
	// Default: 10 seconds.
	HandshakeTimeout time.Duration

	// MaxMessageSize limits incoming WebSocket messages. Data packages
	// for large multiworlds run to megabytes.
	// Default: 64MB. A negative value disables the limit.
	MaxMessageSize int64

	// Logger receives wire-level debug logging.
	// Default: slog.Default().
	Logger *slog.Logger

	// Dialer overrides the WebSocket dialer. HandshakeTimeout is applied
	// on top of it.
	// Default: a clone of websocket.DefaultDialer.
	Dialer *websocket.Dialer

	// Metrics, when non-nil, receives connection counters.
	// Default: nil (no metrics).
	Metrics *Metrics
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HandshakeTimeout: 10 * time.Second,
		MaxMessageSize:   64 << 20,
		Logger:           slog.Default(),
	}
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// withDefaults fills zero fields in from DefaultConfig.
func (c *Config) withDefaults() *Config {
	base := DefaultConfig()
	if c == nil {
		return base
	}
	clone := c.Clone()
	if clone.HandshakeTimeout == 0 {
		clone.HandshakeTimeout = base.HandshakeTimeout
	}
	if clone.MaxMessageSize == 0 {
		clone.MaxMessageSize = base.MaxMessageSize
	}
	if clone.Logger == nil {
		clone.Logger = base.Logger
	}
	return clone
}
