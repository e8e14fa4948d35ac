package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engineql/query"
	"engineql/wire"
)

func newUserFindFirst(wheres ...testParam) query.FindFirst[testParam, testRelation, testParam, testParam, user] {
	return query.NewFindFirst[testParam, testRelation, testParam, testParam, user](
		query.NewSession(nil), userInfo(), wheres...,
	)
}

func TestFindFirstCarriesAllBounds(t *testing.T) {
	root := newUserFindFirst(testParam{field: "active", value: wire.Bool(true)}).
		OrderBy(testParam{field: "name", value: wire.Enum("asc")}).
		Cursor(testParam{field: "id", value: wire.Int(50)}).
		Skip(2).
		Take(10).
		Operation().Root()

	assert.Equal(t, "findFirstUser", root.Name())
	assert.Equal(t, wire.ResultAlias, root.Alias())

	names := make([]string, 0, len(root.Arguments()))
	for _, arg := range root.Arguments() {
		names = append(names, arg.Name)
	}
	assert.Equal(t, []string{"where", "orderBy", "cursor", "skip", "take"}, names)

	take, ok := findArgument(t, root, "take")
	require.True(t, ok)
	assert.Equal(t, int64(10), take.Value.IntValue())
}

func TestFindFirstTakeIsValueSemantic(t *testing.T) {
	base := newUserFindFirst()
	bounded := base.Take(1)

	_, baseHasTake := findArgument(t, base.Operation().Root(), "take")
	assert.False(t, baseHasTake, "base builder is untouched by derived chains")

	take, ok := findArgument(t, bounded.Operation().Root(), "take")
	require.True(t, ok)
	assert.Equal(t, int64(1), take.Value.IntValue())
}
