package ops

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"mlft/internal/model/enum"
	"mlft/internal/risk"
	"mlft/pkg/exception"

	"github.com/yanun0323/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultMatchAlgo      = enum.MatchAlwaysFilled
	defaultStrategySeed   = int64(1)
	defaultStrategyMaxQty = 5.0
)

// FileConfig mirrors the run config layout. JSON and YAML share the same keys.
type FileConfig struct {
	Instruments string               `json:"instruments" yaml:"instruments"`
	Bars        string               `json:"bars" yaml:"bars"`
	MatchAlgo   *enum.MatchAlgorithm `json:"matchAlgo" yaml:"matchAlgo"`
	Risk        risk.Config          `json:"risk" yaml:"risk"`
	Output      OutputConfig         `json:"output" yaml:"output"`
	Strategy    StrategyConfig       `json:"strategy" yaml:"strategy"`
}

// OutputConfig describes where results are written. Empty values disable
// the corresponding output.
type OutputConfig struct {
	Dir            string `json:"dir" yaml:"dir"`
	Snapshot       string `json:"snapshot" yaml:"snapshot"`
	VerifySnapshot string `json:"verifySnapshot" yaml:"verifySnapshot"`
}

// StrategyConfig captures the demo strategy knobs.
type StrategyConfig struct {
	Seed   *int64   `json:"seed" yaml:"seed"`
	MaxQty *float64 `json:"maxQty" yaml:"maxQty"`
}

// StrategySpec is the resolved demo strategy setup.
type StrategySpec struct {
	Seed   int64
	MaxQty float64
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Instruments string
	Bars        string
	MatchAlgo   enum.MatchAlgorithm
	Risk        risk.Config
	Output      OutputConfig
	Strategy    StrategySpec
}

// Default returns the configuration used when no file is given.
func Default() Loaded {
	return Loaded{
		MatchAlgo: defaultMatchAlgo,
		Strategy: StrategySpec{
			Seed:   defaultStrategySeed,
			MaxQty: defaultStrategyMaxQty,
		},
	}
}

// Load reads a JSON or YAML config file, chosen by extension. Relative data
// paths are resolved against the config file directory.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Loaded{}, errors.Wrapf(exception.ErrNotFound, "config file %s", path)
		}
		return Loaded{}, errors.Wrapf(err, "read config %s", path)
	}

	cfg, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return Loaded{}, errors.Wrapf(err, "config %s", path)
	}

	loaded, err := Resolve(cfg)
	if err != nil {
		return Loaded{}, errors.Wrapf(err, "config %s", path)
	}

	dir := filepath.Dir(path)
	loaded.Instruments = relativeTo(dir, loaded.Instruments)
	loaded.Bars = relativeTo(dir, loaded.Bars)
	loaded.Output.Dir = relativeTo(dir, loaded.Output.Dir)
	loaded.Output.Snapshot = relativeTo(dir, loaded.Output.Snapshot)
	loaded.Output.VerifySnapshot = relativeTo(dir, loaded.Output.VerifySnapshot)
	return loaded, nil
}

// Decode parses config bytes. ext is a file extension such as ".json" or ".yaml".
func Decode(data []byte, ext string) (FileConfig, error) {
	var cfg FileConfig
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return FileConfig{}, errors.Wrapf(exception.ErrInvalidConfig, "decode json: %s", err.Error())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return FileConfig{}, errors.Wrapf(exception.ErrInvalidConfig, "decode yaml: %s", err.Error())
		}
	default:
		return FileConfig{}, errors.Wrapf(exception.ErrInvalidConfig, "unsupported config format %q", ext)
	}
	return cfg, nil
}

// Resolve applies defaults and validates a decoded config.
func Resolve(cfg FileConfig) (Loaded, error) {
	loaded := Default()
	loaded.Instruments = cfg.Instruments
	loaded.Bars = cfg.Bars
	loaded.Risk = cfg.Risk
	loaded.Output = cfg.Output

	if cfg.MatchAlgo != nil {
		loaded.MatchAlgo = *cfg.MatchAlgo
	}
	if cfg.Strategy.Seed != nil {
		loaded.Strategy.Seed = *cfg.Strategy.Seed
	}
	if cfg.Strategy.MaxQty != nil {
		loaded.Strategy.MaxQty = *cfg.Strategy.MaxQty
	}

	if err := loaded.Validate(); err != nil {
		return Loaded{}, err
	}
	return loaded, nil
}

func (l Loaded) Validate() error {
	if !l.MatchAlgo.IsAvailable() {
		return errors.Wrapf(exception.ErrInvalidConfig, "match algorithm: %d", l.MatchAlgo)
	}
	if l.Risk.MaxOrderQty < 0 {
		return errors.Wrap(exception.ErrInvalidConfig, "risk maxOrderQty must be >= 0")
	}
	if !(l.Strategy.MaxQty >= 1) {
		return errors.Wrap(exception.ErrInvalidConfig, "strategy maxQty must be >= 1")
	}
	return nil
}

func relativeTo(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
