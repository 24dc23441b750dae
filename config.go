package redis

import (
	"time"

	"github.com/elastic/go-ucfg"
	"go.uber.org/zap"
)

// options holds the per-Connection configuration assembled by Option
// functions or by LoadOptions.
type options struct {
	password       string
	db             int64
	commandTimeout time.Duration
	dialTimeout    time.Duration
	logger         *zap.Logger
	recorder       *Recorder
}

func defaultOptions() options {
	return options{
		dialTimeout: DefaultDialTimeout,
		logger:      zap.NewNop(),
	}
}

// Option configures a Connection at Connect/WithConnection time.
type Option func(*options)

// WithAuth sets the sticky AUTH password applied to every (re)connect.
func WithAuth(password string) Option {
	return func(o *options) { o.password = password }
}

// WithDB sets the sticky SELECT database applied to every (re)connect.
func WithDB(db int64) Option {
	return func(o *options) { o.db = db }
}

// WithCommandTimeout bounds the duration of every command round trip.
// Expiry triggers a reconnect (to discard a potentially stale connection).
func WithCommandTimeout(d time.Duration) Option {
	return func(o *options) { o.commandTimeout = d }
}

// WithDialTimeout bounds TCP/Unix establishment. Zero defaults to
// DefaultDialTimeout.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		if d == 0 {
			d = DefaultDialTimeout
		}
		o.dialTimeout = d
	}
}

// WithLogger installs a zap.Logger for connection lifecycle events. The
// default is a no-op logger; the library stays silent unless a caller opts
// in.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder installs the ambient Prometheus-backed instrumentation
// described in metrics.go. Nil (the default) disables instrumentation
// entirely at zero cost.
func WithRecorder(r *Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// RawConfig is the generic, nested configuration source LoadOptions reads
// from, typically decoded from a config file or service-discovery blob
// before being handed here.
type RawConfig struct {
	Password       string        `config:"password"`
	DB             int64         `config:"db"`
	CommandTimeout time.Duration `config:"command_timeout"`
	DialTimeout    time.Duration `config:"dial_timeout"`
}

// LoadOptions builds a slice of Option from an arbitrary nested source (a
// map[string]interface{}, a struct, or anything go-ucfg can merge) using
// go-ucfg, the same hierarchical-config-merging approach production
// operators use to assemble settings from files, env vars, and flags
// together. It lets an embedding application configure this client the way
// it configures everything else instead of hand-wiring Option calls.
func LoadOptions(source interface{}) ([]Option, error) {
	cfg, err := ucfg.NewFrom(source)
	if err != nil {
		return nil, err
	}

	var raw RawConfig
	if err := cfg.Unpack(&raw); err != nil {
		return nil, err
	}

	var opts []Option
	if raw.Password != "" {
		opts = append(opts, WithAuth(raw.Password))
	}
	if raw.DB != 0 {
		opts = append(opts, WithDB(raw.DB))
	}
	if raw.CommandTimeout != 0 {
		opts = append(opts, WithCommandTimeout(raw.CommandTimeout))
	}
	if raw.DialTimeout != 0 {
		opts = append(opts, WithDialTimeout(raw.DialTimeout))
	}
	return opts, nil
}
