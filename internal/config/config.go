package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nkotak/gridflow/internal/experiment"
)

const (
	DefaultRows      = 32
	DefaultCols      = 32
	DefaultSpacing   = 10.0
	DefaultDt        = 50.0
	DefaultDuration  = 50000.0
	DefaultSaveEvery = 10
	DefaultD         = 0.01
	DefaultKappa     = 1.0
	DefaultSc        = 0.7
	DefaultAmplitude = 10.0
)

type Config struct {
	Model      string             `yaml:"model"`
	Stepper    string             `yaml:"stepper"`
	Rows       int                `yaml:"rows"`
	Cols       int                `yaml:"cols"`
	Dx         float64            `yaml:"dx"`
	Dy         float64            `yaml:"dy"`
	Init       string             `yaml:"init"`
	Amplitude  float64            `yaml:"amplitude"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	SaveEvery  int                `yaml:"save_every"`
	Seed       int64              `yaml:"seed"`
	Params     map[string]float64 `yaml:"params"`
	Boundaries BoundaryConfig     `yaml:"boundaries"`
}

// BoundaryConfig names the treatment of each grid edge: "fixed" keeps
// the edge at its initial value, "closed" makes it a no-flow wall.
type BoundaryConfig struct {
	Right  string `yaml:"right"`
	Top    string `yaml:"top"`
	Left   string `yaml:"left"`
	Bottom string `yaml:"bottom"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     "diffusion",
		Stepper:   "euler",
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		Dx:        DefaultSpacing,
		Dy:        DefaultSpacing,
		Init:      "scarp",
		Amplitude: DefaultAmplitude,
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		SaveEvery: DefaultSaveEvery,
		Params:    map[string]float64{"D": DefaultD},
		Boundaries: BoundaryConfig{
			Right: "fixed", Top: "fixed", Left: "fixed", Bottom: "fixed",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToExperiment converts a file config into an experiment config.
func (c *Config) ToExperiment() experiment.Config {
	return experiment.Config{
		Model:        c.Model,
		Stepper:      c.Stepper,
		Rows:         c.Rows,
		Cols:         c.Cols,
		Dx:           c.Dx,
		Dy:           c.Dy,
		Init:         c.Init,
		Amplitude:    c.Amplitude,
		Dt:           c.Dt,
		Duration:     c.Duration,
		SaveEvery:    c.SaveEvery,
		Seed:         c.Seed,
		Params:       c.Params,
		ClosedRight:  c.Boundaries.Right == "closed",
		ClosedTop:    c.Boundaries.Top == "closed",
		ClosedLeft:   c.Boundaries.Left == "closed",
		ClosedBottom: c.Boundaries.Bottom == "closed",
	}
}
