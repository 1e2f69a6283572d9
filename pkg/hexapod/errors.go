package hexapod

import "errors"

var (
	// ErrUnknownCommand is returned for a movement command name outside
	// the registry.
	ErrUnknownCommand = errors.New("unknown movement command")

	// ErrUnknownRig is returned for a pan/tilt rig that does not exist.
	ErrUnknownRig = errors.New("unknown pan/tilt rig")

	// ErrUnknownAction is returned for a pan/tilt action outside the
	// known set.
	ErrUnknownAction = errors.New("unknown pan/tilt action")
)
