package config

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-rampfx/internal/ramp"
)

// MaxFPS is the tick rate above which validation warns.
const MaxFPS = 240

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains values that will be clamped or replaced at runtime.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator checks a Config. Out-of-range effect values are warnings by
// default because the ramp clamps them; strict mode reports them as errors.
type Validator struct {
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation where warnings become errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Validate performs validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validateWindow(&cfg.Window, result)
	v.validateEffect(&cfg.Effect, result)

	return result
}

// soft records a problem the runtime tolerates.
func (v *Validator) soft(result *ValidationResult, field, message string) {
	if v.strictMode {
		result.AddError(field, message)
		return
	}
	result.AddWarning(field, message)
}

func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Width <= 0 {
		result.AddError("window.width", fmt.Sprintf("must be positive, got %d", wc.Width))
	}
	if wc.Height <= 0 {
		result.AddError("window.height", fmt.Sprintf("must be positive, got %d", wc.Height))
	}
	switch {
	case wc.FPS <= 0:
		result.AddError("window.fps", fmt.Sprintf("must be positive, got %d", wc.FPS))
	case wc.FPS > MaxFPS:
		v.soft(result, "window.fps", fmt.Sprintf("%d exceeds %d", wc.FPS, MaxFPS))
	}
}

func (v *Validator) validateEffect(ec *EffectConfig, result *ValidationResult) {
	if _, ok := ramp.LookupDirection(ec.Direction); !ok {
		v.soft(result, "effect.direction",
			fmt.Sprintf("unknown direction %q, using %s", ec.Direction, ramp.Left))
	}
	if ec.Speed < ramp.MinSpeed || ec.Speed > ramp.MaxSpeed {
		v.soft(result, "effect.speed",
			fmt.Sprintf("%g outside [%d, %d] will be clamped", ec.Speed, ramp.MinSpeed, ramp.MaxSpeed))
	}
	if ec.Scale < ramp.MinScale || ec.Scale > ramp.MaxScale {
		v.soft(result, "effect.scale",
			fmt.Sprintf("%g outside [%d, %d] will be clamped", ec.Scale, ramp.MinScale, ramp.MaxScale))
	}
	if ec.ColorsCount < MinColors || ec.ColorsCount > MaxColors {
		v.soft(result, "effect.colors_count",
			fmt.Sprintf("%d outside [%d, %d] will be clamped", ec.ColorsCount, MinColors, MaxColors))
	}

	for i, c := range ec.Palette() {
		field := fmt.Sprintf("effect.color%d", i+1)
		if strings.TrimSpace(c) == "" {
			result.AddError(field, "color is empty")
			continue
		}
		if _, err := ramp.ParseColor(c); err != nil {
			result.AddError(field, err.Error())
		}
	}
}

// ValidateConfig is a convenience function to validate a Config with default settings.
// Returns nil if the config is valid, or an error describing validation failures.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	return NewValidator().Validate(cfg).Error()
}

// ValidateConfigStrict validates a Config with strict mode enabled.
func ValidateConfigStrict(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	return NewValidator().WithStrictMode(true).Validate(cfg).Error()
}
