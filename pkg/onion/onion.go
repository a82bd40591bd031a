package onion

import "github.com/matt-usurp/onion/pkg/onion/core"

type (
	Handler      = core.Handler[Input, Output]
	Layer        = core.Layer[Input, Output]
	LayerFunc    = core.LayerFunc[Input, Output]
	Terminus     = core.Terminus[Input, Output]
	TerminusFunc = core.TerminusFunc[Input, Output]
	Instrument   = core.Instrument[Input, Output]
	Composer     = core.Composer[Input, Output]
	Composition  = core.Composition[Input, Output]
)

// Create starts a pipeline over Input and Output.
func Create() *Composer {
	return core.Create[Input, Output]()
}
