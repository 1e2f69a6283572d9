package hexapod

import "fmt"

// Body height limits and poses in mm, tuned on the physical robot.
const (
	TabletopZ = 40  // fully raised tabletop pose
	ResetZ    = 15  // normal walking pose
	MaxZ      = 45  // highest allowed
	MinZ      = -30 // lowest allowed
)

// HeightStep is the body height change per raise/lower command.
const HeightStep = 2

// CommandKind distinguishes how the worker executes a command.
type CommandKind int

const (
	// KindGait maps to one ExecuteGaitStep call.
	KindGait CommandKind = iota
	// KindHeight adjusts body height by a delta, then issues one pose move.
	KindHeight
	// KindPose moves body height to an absolute target, then issues one
	// pose move.
	KindPose
)

// Command is an enumerated, parameterized movement action. Commands are
// immutable once constructed; the slot holds at most one at a time and a
// newer command silently replaces an unconsumed older one.
type Command struct {
	Name   string
	Kind   CommandKind
	Gait   GaitParams // KindGait only
	DeltaZ int        // KindHeight only
	ZTo    int        // KindPose only
}

// commands is the registry of known movement and pose commands. Gait
// parameters are the stock Freenove CMD_MOVE values.
var commands = map[string]Command{
	"forward":       {Name: "forward", Kind: KindGait, Gait: GaitParams{Mode: 1, Lateral: 0, Direction: 35, StepHeight: 10, TurnRate: 0}},
	"backward":      {Name: "backward", Kind: KindGait, Gait: GaitParams{Mode: 2, Lateral: 0, Direction: -35, StepHeight: 10, TurnRate: 10}},
	"strafe-left":   {Name: "strafe-left", Kind: KindGait, Gait: GaitParams{Mode: 1, Lateral: -35, Direction: 0, StepHeight: 10, TurnRate: 0}},
	"strafe-right":  {Name: "strafe-right", Kind: KindGait, Gait: GaitParams{Mode: 1, Lateral: 35, Direction: 0, StepHeight: 10, TurnRate: 0}},
	"turn-left":     {Name: "turn-left", Kind: KindGait, Gait: GaitParams{Mode: 1, Lateral: 0, Direction: 0, StepHeight: 10, TurnRate: 20}},
	"turn-right":    {Name: "turn-right", Kind: KindGait, Gait: GaitParams{Mode: 1, Lateral: 0, Direction: 0, StepHeight: 10, TurnRate: -20}},
	"raise":         {Name: "raise", Kind: KindHeight, DeltaZ: HeightStep},
	"lower":         {Name: "lower", Kind: KindHeight, DeltaZ: -HeightStep},
	"tabletop-pose": {Name: "tabletop-pose", Kind: KindPose, ZTo: TabletopZ},
	"reset-pose":    {Name: "reset-pose", Kind: KindPose, ZTo: ResetZ},
}

// LookupCommand returns the command registered under name.
func LookupCommand(name string) (Command, error) {
	cmd, ok := commands[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// CommandNames returns all registered command names.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	return names
}

// clamp restricts v to the range [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
