package ctrl

import "github.com/google/wire"

var DefaultSet = wire.NewSet(
	NewSystemClock,
	wire.Bind(new(Clock), new(*SystemClock)),
	NewDispatcher,
	NewActionController,
)
