package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Tuning holds optional overrides for the package defaults. Every field is
// a pointer so partial files only touch what they name.
type Tuning struct {
	// Controller
	SprintSpeed        *float64 `json:"sprint_speed,omitempty"`
	RotationSmoothTime *float64 `json:"rotation_smooth_time,omitempty"`
	SpeedChangeRate    *float64 `json:"speed_change_rate,omitempty"`
	CorrectionDelay    *float64 `json:"correction_delay,omitempty"`
	CorrectionPolicy   *string  `json:"correction_policy,omitempty"`
	DistanceKp         *float64 `json:"distance_kp,omitempty"`
	DistanceKi         *float64 `json:"distance_ki,omitempty"`
	DistanceKd         *float64 `json:"distance_kd,omitempty"`
	SpeedKp            *float64 `json:"speed_kp,omitempty"`
	SpeedKi            *float64 `json:"speed_ki,omitempty"`
	SpeedKd            *float64 `json:"speed_kd,omitempty"`

	// Physics
	Gravity     *float64 `json:"gravity,omitempty"`
	JumpTimeout *float64 `json:"jump_timeout,omitempty"`
	FallTimeout *float64 `json:"fall_timeout,omitempty"`

	// Pursuit
	LookAheadTime *float64 `json:"look_ahead_time,omitempty"`

	// Feed
	StaleAfter *string `json:"stale_after,omitempty"` // duration string like "2s"
}

// LoadTuning loads a Tuning from a JSON file. The file must have a .json
// extension and be under 1MB.
func LoadTuning(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat tuning file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("tuning file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return ParseTuning(raw)
}

// ParseTuning decodes and validates tuning JSON.
func ParseTuning(raw []byte) (*Tuning, error) {
	var t Tuning
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate rejects values the controller cannot run with.
func (t *Tuning) Validate() error {
	if t.CorrectionPolicy != nil {
		switch CorrectionPolicy(*t.CorrectionPolicy) {
		case PolicyRefire, PolicyReset:
		default:
			return fmt.Errorf("correction_policy must be %q or %q, got %q", PolicyRefire, PolicyReset, *t.CorrectionPolicy)
		}
	}
	if t.CorrectionDelay != nil && *t.CorrectionDelay <= 0 {
		return fmt.Errorf("correction_delay must be positive, got %v", *t.CorrectionDelay)
	}
	if t.SpeedChangeRate != nil && *t.SpeedChangeRate < 0 {
		return fmt.Errorf("speed_change_rate must not be negative, got %v", *t.SpeedChangeRate)
	}
	if t.StaleAfter != nil {
		if _, err := time.ParseDuration(*t.StaleAfter); err != nil {
			return fmt.Errorf("invalid stale_after %q: %w", *t.StaleAfter, err)
		}
	}
	return nil
}

// Apply writes the set overrides into the package configuration.
func (t *Tuning) Apply() {
	setFloat(&Controller.SprintSpeed, t.SprintSpeed)
	setFloat(&Controller.RotationSmoothTime, t.RotationSmoothTime)
	setFloat(&Controller.SpeedChangeRate, t.SpeedChangeRate)
	setFloat(&Controller.CorrectionDelay, t.CorrectionDelay)
	if t.CorrectionPolicy != nil {
		Controller.CorrectionPolicy = CorrectionPolicy(*t.CorrectionPolicy)
	}
	setFloat(&Controller.DistanceGains.Kp, t.DistanceKp)
	setFloat(&Controller.DistanceGains.Ki, t.DistanceKi)
	setFloat(&Controller.DistanceGains.Kd, t.DistanceKd)
	setFloat(&Controller.SpeedGains.Kp, t.SpeedKp)
	setFloat(&Controller.SpeedGains.Ki, t.SpeedKi)
	setFloat(&Controller.SpeedGains.Kd, t.SpeedKd)

	setFloat(&Physics.Gravity, t.Gravity)
	setFloat(&Physics.JumpTimeout, t.JumpTimeout)
	setFloat(&Physics.FallTimeout, t.FallTimeout)

	setFloat(&Pursuit.LookAheadTime, t.LookAheadTime)

	if t.StaleAfter != nil {
		if d, err := time.ParseDuration(*t.StaleAfter); err == nil {
			Feed.StaleAfter = d
		}
	}
}

// Capture returns a Tuning holding the current values of every field it
// covers.
func Capture() *Tuning {
	policy := string(Controller.CorrectionPolicy)
	stale := Feed.StaleAfter.String()
	return &Tuning{
		SprintSpeed:        ptrFloat64(Controller.SprintSpeed),
		RotationSmoothTime: ptrFloat64(Controller.RotationSmoothTime),
		SpeedChangeRate:    ptrFloat64(Controller.SpeedChangeRate),
		CorrectionDelay:    ptrFloat64(Controller.CorrectionDelay),
		CorrectionPolicy:   &policy,
		DistanceKp:         ptrFloat64(Controller.DistanceGains.Kp),
		DistanceKi:         ptrFloat64(Controller.DistanceGains.Ki),
		DistanceKd:         ptrFloat64(Controller.DistanceGains.Kd),
		SpeedKp:            ptrFloat64(Controller.SpeedGains.Kp),
		SpeedKi:            ptrFloat64(Controller.SpeedGains.Ki),
		SpeedKd:            ptrFloat64(Controller.SpeedGains.Kd),
		Gravity:            ptrFloat64(Physics.Gravity),
		JumpTimeout:        ptrFloat64(Physics.JumpTimeout),
		FallTimeout:        ptrFloat64(Physics.FallTimeout),
		LookAheadTime:      ptrFloat64(Pursuit.LookAheadTime),
		StaleAfter:         &stale,
	}
}

func ptrFloat64(v float64) *float64 { return &v }

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
