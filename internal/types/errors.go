package types

import (
	"cosmossdk.io/errors"
)

// Codespace is the error codespace shared by every planning component.
const Codespace = "planner"

// Recoverable planning errors. Callers match them with errors.Is.
var (
	ErrUnknownBody           = errors.Register(Codespace, 2, "unknown body")
	ErrDegenerateOrbit       = errors.Register(Codespace, 3, "degenerate orbit")
	ErrNoPropulsionAvailable = errors.Register(Codespace, 4, "no propulsion available")
	ErrNoRouteDefined        = errors.Register(Codespace, 5, "no cycler route defined")
	ErrInvalidRequest        = errors.Register(Codespace, 6, "invalid request")
)
