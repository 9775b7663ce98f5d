package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lcoe-calculator/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load project parameters from a separate YAML (e.g. examples/projects/*.yaml).
	// If both ProjectFile and Project are provided, Project overrides ProjectFile.
	ProjectFile string            `yaml:"project_file"`
	Project     ProjectConfig     `yaml:"project"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
}

type ProjectConfig struct {
	Name             string  `yaml:"name"`
	Capacity         float64 `yaml:"capacity"`
	EnergyGeneration float64 `yaml:"energy_generation"`
	CapexPerMW       float64 `yaml:"capex_per_mw"`
	OpexPercent      float64 `yaml:"opex_percent"`
	InterestRate     float64 `yaml:"interest_rate"`
	LoanTenure       int     `yaml:"loan_tenure"`
	ProjectLifetime  int     `yaml:"project_lifetime"`
	DiscountRate     float64 `yaml:"discount_rate"`
	FinancingModel   string  `yaml:"financing_model"`
}

// SensitivityConfig holds defaults for the sensitivity views.
type SensitivityConfig struct {
	TornadoDeltaPct float64  `yaml:"tornado_delta_pct"`
	SweepPoints     int      `yaml:"sweep_points"`
	Parameters      []string `yaml:"parameters"`
	DiscountFrom    float64  `yaml:"discount_from"`
	DiscountTo      float64  `yaml:"discount_to"`
	DiscountStep    float64  `yaml:"discount_step"`
}

const (
	DefaultTornadoDeltaPct = 20.0
	DefaultSweepPoints     = 20
	DefaultDiscountFrom    = 5.0
	DefaultDiscountTo      = 15.0
	DefaultDiscountStep    = 0.5
)

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// If project_file is set, load it and merge in any explicit overrides from c.Project.
	if c.ProjectFile != "" {
		projectPath := c.ProjectFile
		if !filepath.IsAbs(projectPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), projectPath)
			if _, err := os.Stat(cand); err == nil {
				projectPath = cand
			}
		}
		loaded, err := LoadProjectFile(projectPath)
		if err != nil {
			return nil, err
		}
		c.Project = MergeProject(loaded, c.Project)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	c.Sensitivity = c.Sensitivity.WithDefaults()
}

// WithDefaults fills unset sensitivity settings.
func (s SensitivityConfig) WithDefaults() SensitivityConfig {
	if s.TornadoDeltaPct == 0 {
		s.TornadoDeltaPct = DefaultTornadoDeltaPct
	}
	if s.SweepPoints == 0 {
		s.SweepPoints = DefaultSweepPoints
	}
	if s.DiscountStep == 0 {
		s.DiscountFrom = DefaultDiscountFrom
		s.DiscountTo = DefaultDiscountTo
		s.DiscountStep = DefaultDiscountStep
	}
	return s
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Project.ToModelInputs().Validate(); err != nil {
		return fmt.Errorf("project config invalid: %w", err)
	}
	s := c.Sensitivity
	if s.TornadoDeltaPct <= 0 || s.TornadoDeltaPct >= 100 {
		return errors.New("sensitivity.tornado_delta_pct must be in (0, 100)")
	}
	if s.SweepPoints < 1 {
		return errors.New("sensitivity.sweep_points must be >= 1")
	}
	if s.DiscountStep <= 0 || s.DiscountTo < s.DiscountFrom {
		return errors.New("sensitivity.discount_from/to/step must describe a non-empty range")
	}
	for _, p := range s.Parameters {
		if _, err := model.ParseParameter(p); err != nil {
			return fmt.Errorf("sensitivity.parameters: %w", err)
		}
	}
	return nil
}

func (p ProjectConfig) ToModelInputs() model.ProjectInputs {
	return model.ProjectInputs{
		Capacity:         p.Capacity,
		EnergyGeneration: p.EnergyGeneration,
		CapexPerMW:       p.CapexPerMW,
		OpexPercent:      p.OpexPercent,
		InterestRate:     p.InterestRate,
		LoanTenure:       p.LoanTenure,
		ProjectLifetime:  p.ProjectLifetime,
		DiscountRate:     p.DiscountRate,
		Financing:        model.FinancingModel(p.FinancingModel),
	}
}

type projectFileWrapper struct {
	Project ProjectConfig `yaml:"project"`
}

// LoadProjectFile reads a preset file of the form `project: {...}`.
func LoadProjectFile(path string) (ProjectConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ProjectConfig{}, err
	}
	var w projectFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ProjectConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Project, nil
}

// MergeProject overlays non-zero fields from override onto base.
// This is used when loading a project file and then applying overrides from the request.
func MergeProject(base, override ProjectConfig) ProjectConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Capacity != 0 {
		out.Capacity = override.Capacity
	}
	if override.EnergyGeneration != 0 {
		out.EnergyGeneration = override.EnergyGeneration
	}
	if override.CapexPerMW != 0 {
		out.CapexPerMW = override.CapexPerMW
	}
	// Note: a zero override cannot clear a non-zero preset rate; edit the preset instead.
	if override.OpexPercent != 0 {
		out.OpexPercent = override.OpexPercent
	}
	if override.InterestRate != 0 {
		out.InterestRate = override.InterestRate
	}
	if override.LoanTenure != 0 {
		out.LoanTenure = override.LoanTenure
	}
	if override.ProjectLifetime != 0 {
		out.ProjectLifetime = override.ProjectLifetime
	}
	if override.DiscountRate != 0 {
		out.DiscountRate = override.DiscountRate
	}
	if override.FinancingModel != "" {
		out.FinancingModel = override.FinancingModel
	}
	return out
}
