package wire

// ResultAlias is the fixed alias applied to every root query field, so the
// engine response carries results under one key regardless of the model
// behind the operation.
const ResultAlias = "result"

// Argument is one ordered (name, value) pair attached to a selection.
type Argument struct {
	Name  string
	Value Value
}

// Selection is an immutable node of the wire query tree: a field name, an
// optional alias, ordered arguments, and ordered child selections. A
// selection with no arguments and no children is a scalar leaf.
type Selection struct {
	name      string
	alias     string
	arguments []Argument
	nested    []Selection
}

// Name returns the field name.
func (s Selection) Name() string { return s.name }

// Alias returns the response alias, or empty when the field is not renamed.
func (s Selection) Alias() string { return s.alias }

// Arguments returns the arguments in push order. The returned slice must
// not be modified.
func (s Selection) Arguments() []Argument { return s.arguments }

// Nested returns the child selections in append order. The returned slice
// must not be modified.
func (s Selection) Nested() []Selection { return s.nested }

// Scalar returns a leaf selection for a plain field.
func Scalar(name string) Selection {
	return Selection{name: name}
}

// SelectionBuilder accumulates a selection before it is frozen. None of its
// methods fail: malformed input such as a duplicate argument name is passed
// through to the emitted operation unchanged, since validation belongs to
// the model layer.
type SelectionBuilder struct {
	name      string
	alias     string
	arguments []Argument
	nested    []Selection
}

// NewSelection starts a builder for a field with the given name.
func NewSelection(name string) *SelectionBuilder {
	return &SelectionBuilder{name: name}
}

// Alias sets the response alias, decoupling the result key from the
// underlying field name.
func (b *SelectionBuilder) Alias(alias string) *SelectionBuilder {
	b.alias = alias
	return b
}

// PushArgument appends one (name, value) pair. Arguments are not
// de-duplicated across calls.
func (b *SelectionBuilder) PushArgument(name string, value Value) *SelectionBuilder {
	b.arguments = append(b.arguments, Argument{Name: name, Value: value})
	return b
}

// NestedSelections appends child field selections.
func (b *SelectionBuilder) NestedSelections(children ...Selection) *SelectionBuilder {
	b.nested = append(b.nested, children...)
	return b
}

// Build freezes the accumulated state into an immutable Selection. The
// builder may keep accumulating afterwards without affecting the returned
// value.
func (b *SelectionBuilder) Build() Selection {
	return Selection{
		name:      b.name,
		alias:     b.alias,
		arguments: append([]Argument(nil), b.arguments...),
		nested:    append([]Selection(nil), b.nested...),
	}
}
