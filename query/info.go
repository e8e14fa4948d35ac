package query

import "engineql/wire"

// Info describes one model to the builders: the name the engine knows it
// by, and the scalar leaf fields fetched when no projection narrows the
// query. It is owned by the external model layer and borrowed read-only
// here; builders never mutate it.
type Info struct {
	// Model is the engine-side model name, e.g. "User".
	Model string
	// ScalarSelections are the default leaf fields, in schema order.
	ScalarSelections []wire.Selection
}
