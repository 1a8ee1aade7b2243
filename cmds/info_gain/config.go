package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/unixpickle/fselector/fselector"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Label          string `mapstructure:"label"`
	Threads        int    `mapstructure:"threads"`
	Method         string `mapstructure:"discretizer"`
	Bins           int    `mapstructure:"bins"`
	MinBinSize     int    `mapstructure:"min-bin-size"`
	BetterEncoding bool   `mapstructure:"better-encoding"`
	Kononenko      bool   `mapstructure:"kononenko"`
	Sparse         bool   `mapstructure:"sparse"`
	LogLevel       string `mapstructure:"log-level"`
}

func AddFlags(f *pflag.FlagSet) {
	f.String("config", "", "optional config file (yaml, json or toml)")
	f.String("label", "label", "name of the label field")
	f.Int("threads", 0, "number of worker Goroutines (0 for GOMAXPROCS)")
	f.String("discretizer", "mdl", "discretization of continuous features: mdl or equal-size")
	f.Int("bins", fselector.DefaultEqualSizeBins, "number of bins for equal-size discretization")
	f.Int("min-bin-size", 1, "minimum number of values in an MDL bin")
	f.Bool("better-encoding", false, "count only distinct boundaries in the MDL cut point cost")
	f.Bool("kononenko", false, "use Kononenko's MDL criterion instead of Fayyad and Irani's")
	f.Bool("sparse", false, "treat numeric features as a sparse matrix without discretization")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
}

// LoadConfig merges flags, FSELECTOR_* environment variables and an
// optional config file, in decreasing order of priority.
func LoadConfig(f *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("fselector")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(f); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "load config")
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}

func (c *Config) Discretizer() (fselector.Discretizer, error) {
	switch c.Method {
	case "mdl":
		m := fselector.MDL{
			MinBinSize:     c.MinBinSize,
			BetterEncoding: c.BetterEncoding,
		}
		if c.Kononenko {
			m.Criterion = fselector.Kononenko
		}
		return m, nil
	case "equal-size":
		return fselector.EqualSize{Bins: c.Bins}, nil
	default:
		return nil, errors.Errorf("unknown discretizer: %s", c.Method)
	}
}

func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}
