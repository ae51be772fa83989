package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalid is returned for settings that cannot be used together or are
// out of range.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Projection ProjectionConfig `mapstructure:"projection"`
	Alignment  AlignmentConfig  `mapstructure:"alignment"`
	Runtime    RuntimeConfig    `mapstructure:"runtime"`
	Output     string           `mapstructure:"output"`
	LogLevel   string           `mapstructure:"log_level"`
}

type ProjectionConfig struct {
	Mode      string `mapstructure:"mode"`
	Flip      bool   `mapstructure:"flip"`
	Segmenter string `mapstructure:"segmenter"`
	Zipper    string `mapstructure:"zipper"`
}

type AlignmentConfig struct {
	CostFunction string  `mapstructure:"cost_function"`
	SpacePenalty float64 `mapstructure:"space_penalty"`
}

type RuntimeConfig struct {
	Processes int  `mapstructure:"processes"`
	Verbose   bool `mapstructure:"verbose"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Projection: ProjectionConfig{
			Mode:      "word",
			Flip:      false,
			Segmenter: "",
			Zipper:    "line",
		},
		Alignment: AlignmentConfig{
			CostFunction: "procrustes-levenshtein",
			SpacePenalty: 0.5,
		},
		Runtime: RuntimeConfig{
			Processes: 1,
			Verbose:   false,
		},
		Output:   "",
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.StringP("mode", "m", defaults.Projection.Mode, "Record format of the source (word|tree|xml)")
	fs.Bool("flip", defaults.Projection.Flip, "Re-tokenize the target side of word alignments instead of the source side")
	fs.String("segmenter", defaults.Projection.Segmenter, "Lay XML output out by segment (identity|dividing-punctuation|punctuation)")
	fs.String("zipper", defaults.Projection.Zipper, "How source and target are paired into records (line|file)")
	fs.StringP("cost-function", "c", defaults.Alignment.CostFunction, "Character cost model used for alignment")
	fs.Float64("space-penalty", defaults.Alignment.SpacePenalty, "Cost of inserting or deleting a space under procrustes-levenshtein")
	fs.IntP("processes", "p", defaults.Runtime.Processes, "Number of file pairs processed in parallel")
	fs.BoolP("verbose", "v", defaults.Runtime.Verbose, "Write per-record alignment traces to stderr")
	fs.StringP("output", "o", defaults.Output, "Output file, or output directory for directory inputs (default stdout)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

// flagKeys maps configuration keys to the flags that set them.
var flagKeys = []struct {
	key  string
	flag string
}{
	{"projection.mode", "mode"},
	{"projection.flip", "flip"},
	{"projection.segmenter", "segmenter"},
	{"projection.zipper", "zipper"},
	{"alignment.cost_function", "cost-function"},
	{"alignment.space_penalty", "space-penalty"},
	{"runtime.processes", "processes"},
	{"runtime.verbose", "verbose"},
	{"output", "output"},
	{"log_level", "log-level"},
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("PROCRUSTES")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("procrustes")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings that no later lookup rejects.
func (c Config) Validate() error {
	if c.Runtime.Processes < 1 {
		return fmt.Errorf("processes must be positive, got %d: %w", c.Runtime.Processes, ErrInvalid)
	}
	if p := c.Alignment.SpacePenalty; p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("space penalty must be a non-negative number, got %v: %w", p, ErrInvalid)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("projection.mode", c.Projection.Mode)
	v.SetDefault("projection.flip", c.Projection.Flip)
	v.SetDefault("projection.segmenter", c.Projection.Segmenter)
	v.SetDefault("projection.zipper", c.Projection.Zipper)
	v.SetDefault("alignment.cost_function", c.Alignment.CostFunction)
	v.SetDefault("alignment.space_penalty", c.Alignment.SpacePenalty)
	v.SetDefault("runtime.processes", c.Runtime.Processes)
	v.SetDefault("runtime.verbose", c.Runtime.Verbose)
	v.SetDefault("output", c.Output)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds every registered flag to its nested key, so a flag that
// was not set leaves the key to the environment and the config file.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("%s: %w", fk.flag, err)
		}
	}
	return nil
}
