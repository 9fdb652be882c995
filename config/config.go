package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/izouxv/goShamir/logging"
	"github.com/izouxv/goShamir/shamir"
)

const (
	ConfigFileKey = "config"
	FormatKey     = "format"
	VerboseKey    = "verbose"
	LogLevelKey   = "log-level"
	LogFormatKey  = "log-format"
	StrategyKey   = "strategy"
	RedactKey     = "redact"

	// EnvPrefix prefixes environment overrides, e.g. SHAMIR_LOG_LEVEL.
	EnvPrefix = "SHAMIR"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Config is the resolved configuration of a command invocation.
type Config struct {
	Format    string
	Verbose   bool
	LogLevel  string
	LogFormat string
	Strategy  shamir.Strategy
	Redact    bool
}

// AddGlobalFlags registers the flags shared by every command.
func AddGlobalFlags(fs *pflag.FlagSet) {
	fs.String(ConfigFileKey, "", "Path to a YAML or JSON config file")
	fs.String(FormatKey, "text", "Output format (text|json)")
	fs.BoolP(VerboseKey, "v", false, "Verbose output")
	fs.String(LogLevelKey, "warn", "Log level (debug|info|warn|error)")
	fs.String(LogFormatKey, "text", "Log record encoding on stderr (text|json)")
}

// AddSolveFlags registers the flags of the solve command.
func AddSolveFlags(fs *pflag.FlagSet) {
	fs.String(StrategyKey, shamir.StrategyRational.String(), "Division strategy (basis|rational)")
	fs.Bool(RedactKey, false, "Print a fingerprint of the secret instead of its value")
}

// GetViper returns the viper environment built from the parsed flags, the
// SHAMIR_* environment and the config file named by --config, if any.
func GetViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(ConfigFileKey); path != "" {
		v.SetConfigFile(os.ExpandEnv(path))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return v, nil
}

// FromViper sets the attributes of a Config from the viper environment.
// Command specific settings are only resolved when fs defines their flag, so
// a stray SHAMIR_STRATEGY does not break commands that take no strategy.
func FromViper(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	cfg := Config{
		Format:    v.GetString(FormatKey),
		Verbose:   v.GetBool(VerboseKey),
		LogLevel:  v.GetString(LogLevelKey),
		LogFormat: v.GetString(LogFormatKey),
		Strategy:  shamir.StrategyRational,
	}
	if fs.Lookup(RedactKey) != nil {
		cfg.Redact = v.GetBool(RedactKey)
	}
	if fs.Lookup(StrategyKey) != nil {
		if name := v.GetString(StrategyKey); name != "" {
			strategy, err := shamir.ParseStrategy(name)
			if err != nil {
				return Config{}, err
			}
			cfg.Strategy = strategy
		}
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown formats and log levels.
func (c Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if !slices.Contains(ValidFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format %q: must be one of %v", c.LogFormat, ValidFormats)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
