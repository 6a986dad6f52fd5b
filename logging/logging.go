package logging

import (
	"github.com/risparfinance/camus"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const capabilityName = "logging"

// Host capability functions, one per level.
const (
	LevelInfo  = "Info"
	LevelWarn  = "Warn"
	LevelError = "Error"
	LevelDebug = "Debug"
	LevelTrace = "Trace"
)

// Client exposes convenience helpers for sending log entries to the host runtime.
type Client interface {
	Info(message string)
	Warn(message string)
	Error(message string)
	Debug(message string)
	Trace(message string)
}

// HostCall defines the waPC host function signature used by logging operations.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig camus.RuntimeConfig

	// HostCall overrides the waPC host function used for logging operations.
	HostCall HostCall
}

// client implements Client using the configured host call entrypoint.
type client struct {
	runtime  camus.RuntimeConfig
	hostCall HostCall
}

// New creates a Client that emits logs through the configured host capability.
func New(cfg Config) (Client, error) {
	hostCall := cfg.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &client{
		runtime:  cfg.SDKConfig.WithDefaults(),
		hostCall: hostCall,
	}, nil
}

func (c *client) Info(message string)  { c.log(LevelInfo, message) }
func (c *client) Warn(message string)  { c.log(LevelWarn, message) }
func (c *client) Error(message string) { c.log(LevelError, message) }
func (c *client) Debug(message string) { c.log(LevelDebug, message) }
func (c *client) Trace(message string) { c.log(LevelTrace, message) }

func (c *client) log(level string, message string) {
	_, _ = c.hostCall(c.runtime.Namespace, capabilityName, level, []byte(message))
}

type nop struct{}

// Nop returns a Client that discards everything.
func Nop() Client { return nop{} }

func (nop) Info(string)  {}
func (nop) Warn(string)  {}
func (nop) Error(string) {}
func (nop) Debug(string) {}
func (nop) Trace(string) {}
