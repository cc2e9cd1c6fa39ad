package pathfinding

import (
	"errors"

	"gridroute/core"
)

var (
	// ErrUnknownSide indicates an anchor side outside top/right/bottom/left.
	ErrUnknownSide = core.ErrUnknownSide
	// ErrInvalidStep indicates a non-positive or non-finite grid step.
	ErrInvalidStep = errors.New("pathfinding: step must be a positive finite number")
	// ErrInvalidOffset indicates a negative or non-finite anchor offset.
	ErrInvalidOffset = errors.New("pathfinding: anchor offset must be a non-negative finite number")
	// ErrInvalidLimit indicates a negative iteration budget.
	ErrInvalidLimit = errors.New("pathfinding: limit must not be negative")
	// ErrInvalidMapSize indicates a negative or non-finite map dimension.
	ErrInvalidMapSize = errors.New("pathfinding: map size must not be negative")
	// ErrInvalidShape indicates a shape with negative or non-finite geometry.
	ErrInvalidShape = errors.New("pathfinding: shape has invalid geometry")
)
