// Package planning implements the capacity model, the phase estimator and the
// allocation engine that schedules project demand against team capacity.
//
// Everything in this package is a pure function of its inputs: no I/O, no
// shared state, safe to call from concurrent requests.
package planning

import (
	"errors"
	"fmt"
)

const (
	DefaultHoursPerWeek        = 40.0
	DefaultHorizonWeeks        = 52
	DefaultMaxScheduleWeeks    = 520
	DefaultDesignRatio         = 0.25
	DefaultTestingRatio        = 0.375
	DefaultDeploymentRatio     = 0.0
	DefaultSupportRatio        = 0.10
	DefaultBlendedRate         = 150.0
	DefaultVelocityFactor      = 0.8
	DefaultTargetDurationWeeks = 12
	DefaultMaxTeamSize         = 12
)

// Config carries the tunable constants of the capacity model, estimator and engine.
type Config struct {
	HoursPerWeek float64 `koanf:"hours_per_week" yaml:"hours_per_week" json:"hours_per_week"`
	// HorizonWeeks is the red line: projects ending after it are infeasible.
	HorizonWeeks int `koanf:"horizon_weeks" yaml:"horizon_weeks" json:"horizon_weeks"`
	// MaxScheduleWeeks bounds how far a phase may stretch before its hours are
	// reported as unscheduled.
	MaxScheduleWeeks int `koanf:"max_schedule_weeks" yaml:"max_schedule_weeks" json:"max_schedule_weeks"`

	DesignRatio     float64 `koanf:"design_ratio" yaml:"design_ratio" json:"design_ratio"`
	TestingRatio    float64 `koanf:"testing_ratio" yaml:"testing_ratio" json:"testing_ratio"`
	DeploymentRatio float64 `koanf:"deployment_ratio" yaml:"deployment_ratio" json:"deployment_ratio"`
	SupportRatio    float64 `koanf:"support_ratio" yaml:"support_ratio" json:"support_ratio"`

	BlendedRate         float64 `koanf:"blended_rate" yaml:"blended_rate" json:"blended_rate"`
	VelocityFactor      float64 `koanf:"velocity_factor" yaml:"velocity_factor" json:"velocity_factor"`
	TargetDurationWeeks int     `koanf:"target_duration_weeks" yaml:"target_duration_weeks" json:"target_duration_weeks"`
	MaxTeamSize         int     `koanf:"max_team_size" yaml:"max_team_size" json:"max_team_size"`
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		HoursPerWeek:        DefaultHoursPerWeek,
		HorizonWeeks:        DefaultHorizonWeeks,
		MaxScheduleWeeks:    DefaultMaxScheduleWeeks,
		DesignRatio:         DefaultDesignRatio,
		TestingRatio:        DefaultTestingRatio,
		DeploymentRatio:     DefaultDeploymentRatio,
		SupportRatio:        DefaultSupportRatio,
		BlendedRate:         DefaultBlendedRate,
		VelocityFactor:      DefaultVelocityFactor,
		TargetDurationWeeks: DefaultTargetDurationWeeks,
		MaxTeamSize:         DefaultMaxTeamSize,
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig. Ratios are left
// alone because zero is a meaningful ratio.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.HoursPerWeek <= 0 {
		c.HoursPerWeek = d.HoursPerWeek
	}
	if c.HorizonWeeks <= 0 {
		c.HorizonWeeks = d.HorizonWeeks
	}
	if c.MaxScheduleWeeks < c.HorizonWeeks {
		c.MaxScheduleWeeks = max(d.MaxScheduleWeeks, c.HorizonWeeks)
	}
	if c.BlendedRate < 0 {
		c.BlendedRate = d.BlendedRate
	}
	if c.VelocityFactor <= 0 || c.VelocityFactor > 1 {
		c.VelocityFactor = d.VelocityFactor
	}
	if c.TargetDurationWeeks <= 0 {
		c.TargetDurationWeeks = d.TargetDurationWeeks
	}
	if c.MaxTeamSize <= 0 {
		c.MaxTeamSize = d.MaxTeamSize
	}
	return c
}

var errInvalidConfig = errors.New("invalid planning config")

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.HoursPerWeek <= 0 {
		return fmt.Errorf("%w: hours_per_week must be > 0", errInvalidConfig)
	}
	if c.HorizonWeeks <= 0 {
		return fmt.Errorf("%w: horizon_weeks must be > 0", errInvalidConfig)
	}
	if c.MaxScheduleWeeks < c.HorizonWeeks {
		return fmt.Errorf("%w: max_schedule_weeks must be >= horizon_weeks", errInvalidConfig)
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"design_ratio", c.DesignRatio},
		{"testing_ratio", c.TestingRatio},
		{"deployment_ratio", c.DeploymentRatio},
		{"support_ratio", c.SupportRatio},
		{"blended_rate", c.BlendedRate},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must be >= 0", errInvalidConfig, f.name)
		}
	}
	return nil
}
