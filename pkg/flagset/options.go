package flagset

import (
	"log/slog"

	"github.com/randalmurphal/flagset/pkg/flagset/observability"
	"github.com/randalmurphal/flagset/pkg/flagset/persist"
)

// registryConfig holds the collaborators a Registry uses.
type registryConfig struct {
	store    persist.Store
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	autoLoad bool
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		logger:   slog.Default(),
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
		autoLoad: true,
	}
}

// Option configures a Registry.
type Option func(*registryConfig)

// WithStore sets where flag state is loaded from and saved to.
// Without a store, Load reports false and Save does nothing.
func WithStore(store persist.Store) Option {
	return func(c *registryConfig) {
		c.store = store
	}
}

// WithLogger sets the logger for persistence failures and mutations.
// Default: slog.Default(). A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *registryConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}.
//
// Example:
//
//	reg, err := flagset.New(decls, flagset.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *registryConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used around loads and saves.
// Default: observability.NoopSpanManager{}.
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *registryConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithAutoLoad controls whether New loads persisted state after
// registration. Default: true.
func WithAutoLoad(enabled bool) Option {
	return func(c *registryConfig) {
		c.autoLoad = enabled
	}
}
