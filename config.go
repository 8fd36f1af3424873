package epicycles

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config holds the parameters of one pipeline run. A Config is a plain
// value; stages receive it as an argument and never modify it.
type Config struct {
	SamplesPerPath      int     `yaml:"samples_per_path"`      // points per sampled segment
	EnergyThreshold     float64 `yaml:"energy_threshold"`      // selection cutoff, in (0,1]
	MinEpicycles        int     `yaml:"min_epicycles"`         // lower bound on K
	MaxEpicycles        int     `yaml:"max_epicycles"`         // upper bound on K
	AnimationSteps      int     `yaml:"animation_steps"`       // frame count S
	ScaleFactor         float64 `yaml:"scale_factor"`          // target extent after normalization
	ArclenTolerance     float64 `yaml:"arclen_tolerance"`      // arc length inversion accuracy
	ArclenMaxIterations int     `yaml:"arclen_max_iterations"` // arc length inversion iteration cap
	CloseTolerance      float64 `yaml:"close_tolerance"`       // max gap between first and last point of a closed cloud
	FlipY               bool    `yaml:"flip_y"`                // mirror sampled points at the x-axis
}

// DefaultConfig returns a configuration suitable for tracing outlines of
// SVG drawings at video quality.
func DefaultConfig() Config {
	return Config{
		SamplesPerPath:      5000,
		EnergyThreshold:     0.999,
		MinEpicycles:        100,
		MaxEpicycles:        2000,
		AnimationSteps:      2000,
		ScaleFactor:         8.0,
		ArclenTolerance:     1e-6,
		ArclenMaxIterations: 50,
		CloseTolerance:      1e-6,
		FlipY:               true,
	}
}

// Validate checks every parameter for its admissible range.
func (c Config) Validate() error {
	var errs []error
	if c.SamplesPerPath < 1 {
		errs = append(errs, fmt.Errorf("%w: samples_per_path must be positive, is %d",
			ErrInvalidConfig, c.SamplesPerPath))
	}
	if !(c.EnergyThreshold > 0 && c.EnergyThreshold <= 1) {
		errs = append(errs, fmt.Errorf("%w: energy_threshold must be in (0,1], is %g",
			ErrInvalidConfig, c.EnergyThreshold))
	}
	if c.MinEpicycles < 0 || c.MaxEpicycles < 1 || c.MinEpicycles > c.MaxEpicycles {
		errs = append(errs, fmt.Errorf("%w: epicycle bounds [%d,%d] are invalid",
			ErrInvalidConfig, c.MinEpicycles, c.MaxEpicycles))
	}
	if c.AnimationSteps < 1 {
		errs = append(errs, fmt.Errorf("%w: animation_steps must be positive, is %d",
			ErrInvalidConfig, c.AnimationSteps))
	}
	if !(c.ScaleFactor > 0) {
		errs = append(errs, fmt.Errorf("%w: scale_factor must be positive, is %g",
			ErrInvalidConfig, c.ScaleFactor))
	}
	if !(c.ArclenTolerance > 0) || c.ArclenMaxIterations < 1 {
		errs = append(errs, fmt.Errorf("%w: arc length solver needs positive tolerance and iteration cap",
			ErrInvalidConfig))
	}
	if c.CloseTolerance < 0 {
		errs = append(errs, fmt.Errorf("%w: close_tolerance must not be negative", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML document and overlays it onto DefaultConfig.
// Keys not present in the document keep their default values.
//
//	samples_per_path: 1000
//	energy_threshold: 0.99
//	min_epicycles: 10
func LoadConfig(r io.Reader) (Config, error) {
	conf := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil && !errors.Is(err, io.EOF) {
		return conf, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := conf.Validate(); err != nil {
		return conf, err
	}
	tracer().Debugf("loaded configuration %+v", conf)
	return conf, nil
}
