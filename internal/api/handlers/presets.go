package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lcoe-calculator/internal/api/models"
	"lcoe-calculator/internal/config"
	"lcoe-calculator/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PresetHandler lists project presets and resolves requests against them
type PresetHandler struct {
	projectDir string
	log        *zap.Logger
}

// NewPresetHandler creates a preset handler rooted at dir. An empty dir falls
// back to PROJECT_DIR, then ./examples/projects.
func NewPresetHandler(dir string, log *zap.Logger) *PresetHandler {
	if dir == "" {
		dir = os.Getenv("PROJECT_DIR")
	}
	if dir == "" {
		dir = filepath.Join("examples", "projects")
	}
	// Convert to absolute path for reliability
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	log.Info("using project preset directory", zap.String("dir", dir))
	return &PresetHandler{projectDir: dir, log: log}
}

// ProjectDir returns the preset directory path
func (h *PresetHandler) ProjectDir() string {
	return h.projectDir
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.PresetInfo{}

	entries, err := os.ReadDir(h.projectDir)
	if err != nil {
		if os.IsNotExist(err) {
			h.log.Warn("preset directory does not exist", zap.String("dir", h.projectDir))
			c.JSON(http.StatusOK, presets)
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: fmt.Sprintf("Failed to read preset directory: %v", err),
			},
		})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		p, err := config.LoadProjectFile(filepath.Join(h.projectDir, entry.Name()))
		if err != nil {
			h.log.Warn("skipping unreadable preset", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		id := strings.TrimSuffix(strings.TrimSuffix(entry.Name(), ".yaml"), ".yml")
		name := p.Name
		if name == "" {
			name = id
		}
		presets = append(presets, models.PresetInfo{
			ID:   id,
			Name: name,
			File: entry.Name(),
			Specs: models.PresetSpecs{
				Capacity:        p.Capacity,
				ProjectLifetime: p.ProjectLifetime,
				DiscountRate:    p.DiscountRate,
			},
		})
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })
	c.JSON(http.StatusOK, presets)
}

// Resolve overlays a request's project on the named preset. Only fields present
// in the request are applied, so an explicit 0 replaces a preset value. The
// preset name is reduced to its base name so requests cannot read outside the
// preset directory.
func (h *PresetHandler) Resolve(presetFile string, req models.ProjectRequest) (model.ProjectInputs, error) {
	var base config.ProjectConfig
	if presetFile != "" {
		name := filepath.Base(presetFile)
		if !isYAML(name) {
			name += ".yaml"
		}
		loaded, err := config.LoadProjectFile(filepath.Join(h.projectDir, name))
		if err != nil {
			return model.ProjectInputs{}, fmt.Errorf("%w: %s", errPresetNotFound, name)
		}
		base = loaded
	}
	return applyRequest(base, req).ToModelInputs(), nil
}

func applyRequest(p config.ProjectConfig, req models.ProjectRequest) config.ProjectConfig {
	if req.Name != "" {
		p.Name = req.Name
	}
	setIfPresent(&p.Capacity, req.Capacity)
	setIfPresent(&p.EnergyGeneration, req.EnergyGeneration)
	setIfPresent(&p.CapexPerMW, req.CapexPerMW)
	setIfPresent(&p.OpexPercent, req.OpexPercent)
	setIfPresent(&p.InterestRate, req.InterestRate)
	setIfPresent(&p.LoanTenure, req.LoanTenure)
	setIfPresent(&p.ProjectLifetime, req.ProjectLifetime)
	setIfPresent(&p.DiscountRate, req.DiscountRate)
	if req.FinancingModel != "" {
		p.FinancingModel = req.FinancingModel
	}
	return p
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
