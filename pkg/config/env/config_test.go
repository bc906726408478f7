package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/code-payments/solana-instruction-api/pkg/config"
)

func TestConfig(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"

	t.Setenv(env, "value")
	v, err := NewConfig("env_config_test_var").Get(context.Background())
	assert.Equal(t, []byte("value"), v)
	assert.Nil(t, err)

	t.Setenv(env, "")
	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestConfig_ReadsLatestValue(t *testing.T) {
	const env = "ENV_CONFIG_TEST_RATE"

	limit := NewFloat64Config(env, 50)
	assert.EqualValues(t, 50, limit.Get(context.Background()))

	t.Setenv(env, "2.5")
	assert.EqualValues(t, 2.5, limit.Get(context.Background()))

	origins := NewStringSliceConfig("ENV_CONFIG_TEST_ORIGINS", []string{"*"})
	assert.Equal(t, []string{"*"}, origins.Get(context.Background()))

	t.Setenv("ENV_CONFIG_TEST_ORIGINS", "https://a.example,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins.Get(context.Background()))
}
