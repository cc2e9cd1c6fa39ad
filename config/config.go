// Package config loads the tuning parameters of the router.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"gridroute/pathfinding"
)

// EnvLimit overrides the iteration budget when set.
const EnvLimit = "GRIDROUTE_LIMIT"

// Tuning holds the knobs of a routing run, in real units.
type Tuning struct {
	AnchorOffset float64 `json:"anchorOffset" jsonschema:"minimum=0,description=Stand-off between a shape and where the search starts"`
	Step         float64 `json:"step" jsonschema:"minimum=0,description=Nominal grid step"`
	MapWidth     float64 `json:"mapWidth,omitempty" jsonschema:"minimum=0,description=Width of the searchable region; 0 derives it from the shapes"`
	MapHeight    float64 `json:"mapHeight,omitempty" jsonschema:"minimum=0,description=Height of the searchable region; 0 derives it from the shapes"`
	Limit        int     `json:"limit" jsonschema:"minimum=0,description=Maximum number of search iterations"`
}

// Default returns the tuning used when nothing is configured.
func Default() Tuning {
	d := pathfinding.DefaultOptions()
	return Tuning{
		AnchorOffset: d.AnchorOffset,
		Step:         d.Step,
		MapWidth:     d.MapWidth,
		MapHeight:    d.MapHeight,
		Limit:        d.Limit,
	}
}

// Parse decodes a JSON tuning document on top of the defaults. Fields absent
// from data keep their default value.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := json.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Load reads a tuning file, applies environment overrides and validates the
// result. An empty path yields the defaults with overrides applied.
func Load(path string) (Tuning, error) {
	t := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Tuning{}, fmt.Errorf("read tuning: %w", err)
		}
		if t, err = Parse(data); err != nil {
			return Tuning{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := t.ApplyEnv(); err != nil {
		return Tuning{}, err
	}
	return t, t.Validate()
}

// ApplyEnv applies GRIDROUTE_LIMIT when it is set.
func (t *Tuning) ApplyEnv() error {
	v := os.Getenv(EnvLimit)
	if v == "" {
		return nil
	}
	limit, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvLimit, err)
	}
	t.Limit = limit
	return nil
}

// Validate checks every field against the constraints of the router.
func (t Tuning) Validate() error {
	if math.IsNaN(t.Step) || math.IsInf(t.Step, 0) || t.Step <= 0 {
		return fmt.Errorf("%w: %v", pathfinding.ErrInvalidStep, t.Step)
	}
	if math.IsNaN(t.AnchorOffset) || math.IsInf(t.AnchorOffset, 0) || t.AnchorOffset < 0 {
		return fmt.Errorf("%w: %v", pathfinding.ErrInvalidOffset, t.AnchorOffset)
	}
	if t.MapWidth < 0 || t.MapHeight < 0 {
		return fmt.Errorf("%w: %vx%v", pathfinding.ErrInvalidMapSize, t.MapWidth, t.MapHeight)
	}
	if t.Limit < 0 {
		return fmt.Errorf("%w: %d", pathfinding.ErrInvalidLimit, t.Limit)
	}
	return nil
}

// Options converts the tuning into router options.
func (t Tuning) Options() []pathfinding.Option {
	return []pathfinding.Option{pathfinding.WithOptions(pathfinding.Options{
		AnchorOffset: t.AnchorOffset,
		Step:         t.Step,
		MapWidth:     t.MapWidth,
		MapHeight:    t.MapHeight,
		Limit:        t.Limit,
	})}
}
