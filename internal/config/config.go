// YAML mission config loader with CUE validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vehicle holds the kinematic limits the planner respects.
type Vehicle struct {
	MaxSpeed              float64 `yaml:"max_speed"`
	TurningRadius         float64 `yaml:"turning_radius"`
	CoverageTurningRadius float64 `yaml:"coverage_turning_radius"`
}

// Planner holds the search parameters.
type Planner struct {
	K                int     `yaml:"k"`
	Heuristic        int     `yaml:"heuristic"`
	LineWidth        float64 `yaml:"line_width"`
	Visualization    bool    `yaml:"visualization"`
	VisualizationDir string  `yaml:"visualization_dir"`
}

// RibbonSpec is one survey line.
type RibbonSpec struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// MapSpec points at a static map file; empty path means no map.
type MapSpec struct {
	Path      string  `yaml:"path"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// TrafficVessel scripts one simulated vessel for the mission runner.
type TrafficVessel struct {
	ID      uint32  `yaml:"id"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"`
	Speed   float64 `yaml:"speed"`
}

// Start is the vehicle's initial pose for simulated missions.
type Start struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"`
}

// MissionConfig is the root configuration.
type MissionConfig struct {
	MissionID string          `yaml:"mission_id"`
	Vehicle   Vehicle         `yaml:"vehicle"`
	Planner   Planner         `yaml:"planner"`
	Ribbons   []RibbonSpec    `yaml:"ribbons"`
	Map       MapSpec         `yaml:"map"`
	Traffic   []TrafficVessel `yaml:"traffic"`
	Start     Start           `yaml:"start"`
}

// Load loads a YAML mission config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*MissionConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg MissionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *MissionConfig) check() error {
	if c.Vehicle.MaxSpeed <= 0 {
		return fmt.Errorf("vehicle.max_speed must be positive")
	}
	if c.Vehicle.TurningRadius <= 0 {
		return fmt.Errorf("vehicle.turning_radius must be positive")
	}
	if c.Vehicle.CoverageTurningRadius != 0 &&
		c.Vehicle.CoverageTurningRadius < c.Vehicle.TurningRadius {
		return fmt.Errorf("vehicle.coverage_turning_radius must be 0 or at least the turning radius")
	}
	if c.Planner.K < 1 {
		return fmt.Errorf("planner.k must be at least 1")
	}
	return nil
}
