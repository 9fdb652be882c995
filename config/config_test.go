package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izouxv/goShamir/shamir"
)

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	cfg, err := load(t, args...)
	require.NoError(t, err)
	return cfg
}

func load(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddGlobalFlags(fs)
	AddSolveFlags(fs)
	require.NoError(t, fs.Parse(args))

	v, err := GetViper(fs)
	if err != nil {
		return Config{}, err
	}
	return FromViper(v, fs)
}

func TestDefaults(t *testing.T) {
	cfg := parse(t)
	assert.Equal(t, Config{
		Format:    "text",
		LogLevel:  "warn",
		LogFormat: "text",
		Strategy:  shamir.StrategyRational,
	}, cfg)
}

func TestFlags(t *testing.T) {
	cfg := parse(t, "--format", "json", "-v", "--strategy", "basis", "--redact", "--log-level", "debug", "--log-format", "json")
	assert.Equal(t, Config{
		Format:    "json",
		Verbose:   true,
		LogLevel:  "debug",
		LogFormat: "json",
		Strategy:  shamir.StrategyBasis,
		Redact:    true,
	}, cfg)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("SHAMIR_FORMAT", "json")
	t.Setenv("SHAMIR_LOG_LEVEL", "error")

	cfg := parse(t)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "error", cfg.LogLevel)

	// Explicit flags win over the environment.
	cfg = parse(t, "--format", "text")
	assert.Equal(t, "text", cfg.Format)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shamir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: basis\nredact: true\n"), 0o600))

	cfg := parse(t, "--config", path)
	assert.Equal(t, shamir.StrategyBasis, cfg.Strategy)
	assert.True(t, cfg.Redact)

	_, err := load(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInvalidValues(t *testing.T) {
	_, err := load(t, "--format", "xml")
	assert.Error(t, err)

	_, err = load(t, "--strategy", "float")
	assert.Error(t, err)

	_, err = load(t, "--log-level", "loud")
	assert.Error(t, err)

	_, err = load(t, "--log-format", "logfmt")
	assert.Error(t, err)
}

func TestStrategyOnlyForCommandsThatTakeIt(t *testing.T) {
	t.Setenv("SHAMIR_STRATEGY", "float")
	t.Setenv("SHAMIR_REDACT", "true")

	_, err := load(t)
	assert.Error(t, err)

	fs := pflag.NewFlagSet("split", pflag.ContinueOnError)
	AddGlobalFlags(fs)
	require.NoError(t, fs.Parse(nil))
	v, err := GetViper(fs)
	require.NoError(t, err)

	cfg, err := FromViper(v, fs)
	require.NoError(t, err)
	assert.Equal(t, shamir.StrategyRational, cfg.Strategy)
	assert.False(t, cfg.Redact)
}
