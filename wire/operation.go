package wire

// OperationType distinguishes reads (queries) from writes (mutations).
type OperationType string

const (
	OperationRead  OperationType = "query"
	OperationWrite OperationType = "mutation"
)

// Operation wraps a root selection with its read/write polarity. It is the
// unit handed to the engine boundary, either singly or as part of a batch.
type Operation struct {
	typ  OperationType
	root Selection
}

// Read wraps a root selection as a query operation.
func Read(root Selection) Operation {
	return Operation{typ: OperationRead, root: root}
}

// Write wraps a root selection as a mutation operation.
func Write(root Selection) Operation {
	return Operation{typ: OperationWrite, root: root}
}

// Type reports whether the operation is a query or a mutation.
func (o Operation) Type() OperationType { return o.typ }

// Root returns the root selection.
func (o Operation) Root() Selection { return o.root }
