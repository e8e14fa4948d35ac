package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarLeaf(t *testing.T) {
	leaf := Scalar("id")

	assert.Equal(t, "id", leaf.Name())
	assert.Empty(t, leaf.Alias())
	assert.Empty(t, leaf.Arguments())
	assert.Empty(t, leaf.Nested())
}

func TestSelectionBuilderOrder(t *testing.T) {
	sel := NewSelection("findManyUser").
		Alias(ResultAlias).
		PushArgument("where", Object(Field{Name: "id", Value: Int(1)})).
		PushArgument("take", Int(10)).
		NestedSelections(Scalar("id"), Scalar("name")).
		Build()

	assert.Equal(t, "findManyUser", sel.Name())
	assert.Equal(t, "result", sel.Alias())

	args := sel.Arguments()
	require.Len(t, args, 2)
	assert.Equal(t, "where", args[0].Name)
	assert.Equal(t, "take", args[1].Name)

	nested := sel.Nested()
	require.Len(t, nested, 2)
	assert.Equal(t, "id", nested[0].Name())
	assert.Equal(t, "name", nested[1].Name())
}

func TestBuildFreezesSelection(t *testing.T) {
	builder := NewSelection("findManyUser").
		PushArgument("take", Int(10)).
		NestedSelections(Scalar("id"))

	frozen := builder.Build()

	// The builder keeps accumulating; the frozen value must not move.
	builder.PushArgument("skip", Int(5))
	builder.NestedSelections(Scalar("name"))

	assert.Len(t, frozen.Arguments(), 1)
	assert.Len(t, frozen.Nested(), 1)

	second := builder.Build()
	assert.Len(t, second.Arguments(), 2)
	assert.Len(t, second.Nested(), 2)
}

func TestPushArgumentDoesNotDeduplicate(t *testing.T) {
	// Duplicate argument names pass through unchanged; validation is the
	// model layer's job.
	sel := NewSelection("f").
		PushArgument("where", Int(1)).
		PushArgument("where", Int(2)).
		Build()

	require.Len(t, sel.Arguments(), 2)
	assert.Equal(t, int64(1), sel.Arguments()[0].Value.IntValue())
	assert.Equal(t, int64(2), sel.Arguments()[1].Value.IntValue())
}
