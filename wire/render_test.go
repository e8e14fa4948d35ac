package wire

import (
	"testing"
	"time"

	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/printer"
	"github.com/graphql-go/graphql/language/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOperation() Operation {
	sel := NewSelection("findManyUser").
		Alias(ResultAlias).
		PushArgument("where", Object(
			Field{Name: "age", Value: Int(21)},
			Field{Name: "active", Value: Bool(true)},
		)).
		PushArgument("orderBy", Object(Field{Name: "name", Value: Enum("asc")})).
		PushArgument("skip", Int(0)).
		PushArgument("take", Int(10)).
		NestedSelections(
			Scalar("id"),
			Scalar("name"),
			NewSelection("posts").NestedSelections(Scalar("id")).Build(),
		).
		Build()
	return Read(sel)
}

func TestRenderContainsArgumentsAndAlias(t *testing.T) {
	document, err := sampleOperation().Render()
	require.NoError(t, err)

	assert.Contains(t, document, "result: findManyUser(")
	assert.Contains(t, document, "age: 21")
	assert.Contains(t, document, "active: true")
	assert.Contains(t, document, "orderBy: {name: asc}")
	assert.Contains(t, document, "skip: 0", "explicit zero must render")
	assert.Contains(t, document, "take: 10")
	assert.Contains(t, document, "posts")
}

func TestRenderRoundTripsThroughParser(t *testing.T) {
	document, err := sampleOperation().Render()
	require.NoError(t, err)

	parsed, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{Body: []byte(document)}),
	})
	require.NoError(t, err, "rendered document must be valid GraphQL")

	reprinted, ok := printer.Print(parsed).(string)
	require.True(t, ok)
	assert.Equal(t, document, reprinted, "canonical form must be a fixed point")
}

func TestRenderValueLiterals(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	sel := NewSelection("f").
		PushArgument("nil", Null()).
		PushArgument("ratio", Float(1)).
		PushArgument("at", DateTime(ts)).
		PushArgument("blob", Bytes([]byte("hi"))).
		PushArgument("tags", List(String("a"), String("b"))).
		Build()

	document, err := Read(sel).Render()
	require.NoError(t, err)

	assert.Contains(t, document, "nil: null")
	assert.Contains(t, document, "ratio: 1.0", "whole floats stay float literals")
	assert.Contains(t, document, `at: "2024-05-01T12:30:00Z"`)
	assert.Contains(t, document, `blob: "aGk="`)
	assert.Contains(t, document, `tags: ["a", "b"]`)
}

func TestMutationRendersAsMutation(t *testing.T) {
	sel := NewSelection("deleteManyUser").
		Alias(ResultAlias).
		NestedSelections(Scalar("count")).
		Build()

	document, err := Write(sel).Render()
	require.NoError(t, err)
	assert.Contains(t, document, "mutation")
	assert.Contains(t, document, "result: deleteManyUser")
}

func TestFingerprintStability(t *testing.T) {
	first := sampleOperation().Fingerprint()
	second := sampleOperation().Fingerprint()
	assert.Equal(t, first, second, "equal operations share a fingerprint")
	assert.Len(t, first, 64)

	root := sampleOperation().Root()
	asWrite := Write(root)
	assert.NotEqual(t, first, asWrite.Fingerprint(), "operation type is part of the frame")
}

func TestFormatFloatLiteral(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 1, want: "1.0"},
		{in: 0.5, want: "0.5"},
		{in: -3, want: "-3.0"},
		{in: 1e21, want: "1e+21"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloatLiteral(tt.in))
	}
}
