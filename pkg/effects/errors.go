package effects

import "errors"

var (
	// ErrUnknownMode is returned for an LED or buzzer mode outside the
	// known set.
	ErrUnknownMode = errors.New("unknown effect mode")

	// ErrUnknownPreset is returned for a preset name outside the registry.
	ErrUnknownPreset = errors.New("unknown preset")
)
