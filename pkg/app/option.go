package app

import (
	"context"
	"net"
)

// Option configures the environment run by Run().
type Option func(o *opts)

type opts struct {
	configPath string
	shutdownCh <-chan struct{}
	onListen   func(addr net.Addr)
}

// WithConfigPath overrides the default config.yaml location.
func WithConfigPath(path string) Option {
	return func(o *opts) {
		o.configPath = path
	}
}

// WithContext stops the app when ctx is done, in addition to OS signals.
func WithContext(ctx context.Context) Option {
	return func(o *opts) {
		o.shutdownCh = ctx.Done()
	}
}

// WithListenCallback is notified with the bound address once the public
// listener is open.
func WithListenCallback(cb func(addr net.Addr)) Option {
	return func(o *opts) {
		o.onListen = cb
	}
}
