package httpline

import (
	"strings"

	gnet "github.com/panjf2000/gnet/v2"
	"go.uber.org/zap"
)

const (
	defaultReadBufferSize  = 1024
	defaultMaxRequestBytes = 64 << 10
)

type serverConfig struct {
	readBufferSize  int
	maxRequestBytes int
	workers         int
	logger          *zap.Logger
	gnetOpts        []gnet.Option
}

func defaultServerConfig() serverConfig {
	return serverConfig{
		readBufferSize:  defaultReadBufferSize,
		maxRequestBytes: defaultMaxRequestBytes,
		logger:          zap.NewNop(),
	}
}

func newServerConfig(opts []Option) serverConfig {
	cfg := defaultServerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a transport.
type Option func(*serverConfig)

// WithReadBufferSize sets the fixed read buffer of the TCP transport.
// Requests longer than n bytes are truncated.
func WithReadBufferSize(n int) Option {
	return func(cfg *serverConfig) {
		if n > 0 {
			cfg.readBufferSize = n
		}
	}
}

// WithMaxRequestBytes bounds how much the gnet transport buffers per request.
func WithMaxRequestBytes(n int) Option {
	return func(cfg *serverConfig) {
		if n > 0 {
			cfg.maxRequestBytes = n
		}
	}
}

// WithWorkers handles TCP connections on a pool of n goroutines instead of
// one at a time.
func WithWorkers(n int) Option {
	return func(cfg *serverConfig) {
		if n >= 0 {
			cfg.workers = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(cfg *serverConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithGNetOption forwards a gnet.Option to the underlying event engine.
func WithGNetOption(opt gnet.Option) Option {
	return func(cfg *serverConfig) {
		cfg.gnetOpts = append(cfg.gnetOpts, opt)
	}
}

func ensureProtoAddr(addr string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	return "tcp://" + addr
}
