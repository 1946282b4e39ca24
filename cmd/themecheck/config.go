package main

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/themecheck"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the themecheck configuration, read from .themecheck.yaml,
// THEMECHECK_* environment variables and flags, in increasing priority.
type Config struct {
	Source          string       `mapstructure:"source"`           // Authoritative theme source
	Snapshot        string       `mapstructure:"snapshot"`         // Generated audit snapshot
	Identifier      string       `mapstructure:"identifier"`       // Theme object declaration
	PairsIdentifier string       `mapstructure:"pairs_identifier"` // Pair array declaration in the snapshot
	MetadataKeys    []string     `mapstructure:"metadata_keys"`    // Non-role keys of a theme's colors
	Pairs           []PairConfig `mapstructure:"pairs"`
	Policy          PolicyConfig `mapstructure:"policy"`
	Runner          RunnerConfig `mapstructure:"runner"`
	LogLevel        string       `mapstructure:"log_level"`
	NoColor         bool         `mapstructure:"no_color"`
}

// PairConfig configures one required-contrast pair.
type PairConfig struct {
	Foreground string  `mapstructure:"fg"`
	Background string  `mapstructure:"bg"`
	Label      string  `mapstructure:"label"`
	Required   float64 `mapstructure:"required"` // Zero takes the policy's AA threshold
	Large      bool    `mapstructure:"large"`
}

// PolicyConfig configures the level thresholds.
type PolicyConfig struct {
	NormalAA  float64 `mapstructure:"normal_aa"`
	NormalAAA float64 `mapstructure:"normal_aaa"`
	LargeAA   float64 `mapstructure:"large_aa"`
	LargeAAA  float64 `mapstructure:"large_aaa"`
}

// RunnerConfig configures the audit subprocess.
type RunnerConfig struct {
	// Command is the audit argv. {snapshot} and {source} are substituted.
	// Empty runs this executable's audit command.
	Command []string `mapstructure:"command"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	policy := themecheck.DefaultLevelPolicy()
	pairs := themecheck.DefaultPairs()
	pc := make([]PairConfig, len(pairs))
	for i, p := range pairs {
		pc[i] = PairConfig{
			Foreground: p.Foreground,
			Background: p.Background,
			Label:      p.Label,
			Required:   p.Required,
			Large:      p.Large,
		}
	}
	return Config{
		Source:          "src/contexts/ThemeContext.jsx",
		Snapshot:        "scripts/test/themes-audit.js",
		Identifier:      "THEMES",
		PairsIdentifier: "COLOR_PAIRS",
		MetadataKeys:    []string{"themeColor"},
		Pairs:           pc,
		Policy: PolicyConfig{
			NormalAA:  policy.NormalAA,
			NormalAAA: policy.NormalAAA,
			LargeAA:   policy.LargeAA,
			LargeAAA:  policy.LargeAAA,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads the configuration. An empty path looks for
// .themecheck.yaml in the working directory; a missing file there is not an
// error. Flags that were set override every other source.
func LoadConfig(path string, flags *pflag.FlagSet) (Config, string, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("source", d.Source)
	v.SetDefault("snapshot", d.Snapshot)
	v.SetDefault("identifier", d.Identifier)
	v.SetDefault("pairs_identifier", d.PairsIdentifier)
	v.SetDefault("metadata_keys", d.MetadataKeys)
	v.SetDefault("pairs", pairDefaults(d.Pairs))
	v.SetDefault("policy.normal_aa", d.Policy.NormalAA)
	v.SetDefault("policy.normal_aaa", d.Policy.NormalAAA)
	v.SetDefault("policy.large_aa", d.Policy.LargeAA)
	v.SetDefault("policy.large_aaa", d.Policy.LargeAAA)
	v.SetDefault("runner.command", []string{})
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("no_color", d.NoColor)

	v.SetEnvPrefix("THEMECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, flag := range map[string]string{
			"source":    "source",
			"snapshot":  "snapshot",
			"log_level": "log-level",
			"no_color":  "no-color",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, "", err
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".themecheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, v.ConfigFileUsed(), nil
}

// pairDefaults returns pairs in the shape a config file decodes to.
func pairDefaults(pairs []PairConfig) []map[string]any {
	out := make([]map[string]any, len(pairs))
	for i, p := range pairs {
		out[i] = map[string]any{
			"fg":       p.Foreground,
			"bg":       p.Background,
			"label":    p.Label,
			"required": p.Required,
			"large":    p.Large,
		}
	}
	return out
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Source == "" {
		errs = append(errs, errors.New("source must be set"))
	}
	if c.Snapshot == "" {
		errs = append(errs, errors.New("snapshot must be set"))
	}
	if !identifierPattern.MatchString(c.Identifier) {
		errs = append(errs, fmt.Errorf("identifier %q is not a valid identifier", c.Identifier))
	}
	if !identifierPattern.MatchString(c.PairsIdentifier) {
		errs = append(errs, fmt.Errorf("pairs_identifier %q is not a valid identifier", c.PairsIdentifier))
	}
	for i, p := range c.Pairs {
		if p.Foreground == "" || p.Background == "" {
			errs = append(errs, fmt.Errorf("pairs[%d]: fg and bg must be set", i))
		}
		if p.Required < 0 {
			errs = append(errs, fmt.Errorf("pairs[%d]: required must not be negative", i))
		}
	}
	pol := c.Policy
	if pol.NormalAA <= 0 || pol.NormalAAA < pol.NormalAA || pol.LargeAA <= 0 || pol.LargeAAA < pol.LargeAA {
		errs = append(errs, errors.New("policy thresholds must be positive with AAA >= AA"))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// LevelPolicy returns the configured level thresholds.
func (c Config) LevelPolicy() themecheck.LevelPolicy {
	return themecheck.LevelPolicy{
		NormalAA:  c.Policy.NormalAA,
		NormalAAA: c.Policy.NormalAAA,
		LargeAA:   c.Policy.LargeAA,
		LargeAAA:  c.Policy.LargeAAA,
	}
}

// ColorPairs returns the configured pairs.
func (c Config) ColorPairs() []themecheck.ColorPair {
	policy := c.LevelPolicy()
	pairs := make([]themecheck.ColorPair, len(c.Pairs))
	for i, p := range c.Pairs {
		required := p.Required
		if required == 0 {
			required = policy.AA(p.Large)
		}
		pairs[i] = themecheck.ColorPair{
			Foreground: p.Foreground,
			Background: p.Background,
			Label:      p.Label,
			Required:   required,
			Large:      p.Large,
		}
	}
	return pairs
}
