package scene

import "errors"

var (
	// ErrUnknownShape indicates a connector refers to a shape ID not in the scene.
	ErrUnknownShape = errors.New("scene: unknown shape")
	// ErrDuplicateShape indicates two shapes share an ID.
	ErrDuplicateShape = errors.New("scene: duplicate shape id")
	// ErrEmptyShapeID indicates a shape without an ID.
	ErrEmptyShapeID = errors.New("scene: shape id must not be empty")
	// ErrConnectorIndex indicates a connector index out of range.
	ErrConnectorIndex = errors.New("scene: connector index out of range")
)
