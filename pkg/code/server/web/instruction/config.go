package instruction

import (
	"github.com/code-payments/solana-instruction-api/pkg/config"
	"github.com/code-payments/solana-instruction-api/pkg/config/env"
	"github.com/code-payments/solana-instruction-api/pkg/config/memory"
	"github.com/code-payments/solana-instruction-api/pkg/config/wrapper"
)

const (
	envConfigPrefix = "INSTRUCTION_API_"

	RateLimitConfigEnvName = envConfigPrefix + "RATE_LIMIT"
	defaultRateLimit       = 50.0

	MaxBodyBytesConfigEnvName = envConfigPrefix + "MAX_BODY_BYTES"
	defaultMaxBodyBytes       = 64 * 1024

	AllowedOriginsConfigEnvName = envConfigPrefix + "ALLOWED_ORIGINS"
)

var defaultAllowedOrigins = []string{"*"}

type conf struct {
	// Requests per second allowed for a single client IP. Zero or less
	// disables limiting.
	rateLimit      config.Float64
	maxBodyBytes   config.Int64
	allowedOrigins config.StringSlice
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			rateLimit:      env.NewFloat64Config(RateLimitConfigEnvName, defaultRateLimit),
			maxBodyBytes:   env.NewInt64Config(MaxBodyBytesConfigEnvName, defaultMaxBodyBytes),
			allowedOrigins: env.NewStringSliceConfig(AllowedOriginsConfigEnvName, defaultAllowedOrigins),
		}
	}
}

type testOverrides struct {
	rateLimit      float64
	maxBodyBytes   int64
	allowedOrigins []string
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		maxBodyBytes := overrides.maxBodyBytes
		if maxBodyBytes == 0 {
			maxBodyBytes = defaultMaxBodyBytes
		}

		allowedOrigins := overrides.allowedOrigins
		if len(allowedOrigins) == 0 {
			allowedOrigins = defaultAllowedOrigins
		}

		return &conf{
			rateLimit:      wrapper.NewFloat64Config(memory.NewConfig(overrides.rateLimit), overrides.rateLimit),
			maxBodyBytes:   wrapper.NewInt64Config(memory.NewConfig(maxBodyBytes), maxBodyBytes),
			allowedOrigins: wrapper.NewStringSliceConfig(memory.NewConfig(allowedOrigins), allowedOrigins),
		}
	}
}
