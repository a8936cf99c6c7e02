package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/tvgraph/pkg/format"
)

func TestLoadNodeAttributesWithHeader(t *testing.T) {
	input := "" +
		"#index\tname\tcountry\n" +
		"1\talice\tus\n" +
		"2\tbob\tuk\n"

	na, err := format.LoadNodeAttributes(strings.NewReader(input), nil, []string{"name"})
	require.NoError(t, err)

	v, ok := na.Get(1, "name")
	require.True(t, ok)
	assert.Equal(t, "alice", v)

	v, ok = na.Get(2, "country")
	require.True(t, ok)
	assert.Equal(t, "uk", v)

	n, ok := na.ResolveByPrimaryKey([]string{"alice"})
	require.True(t, ok)
	assert.Equal(t, uint64(1), n)
}

func TestLoadNodeAttributesWithoutHeaderUsesDefaultNames(t *testing.T) {
	na, err := format.LoadNodeAttributes(strings.NewReader("1\talice\n"), []string{"name"}, []string{"name"})
	require.NoError(t, err)
	v, ok := na.Get(1, "name")
	require.True(t, ok)
	assert.Equal(t, "alice", v)
}

func TestLoadNodeAttributesMissingPrimaryKeySkipsLink(t *testing.T) {
	input := "#index\tcountry\n1\tus\n"
	na, err := format.LoadNodeAttributes(strings.NewReader(input), nil, []string{"name"})
	require.NoError(t, err)

	_, ok := na.ResolveByPrimaryKey([]string{""})
	assert.False(t, ok)
	v, ok := na.Get(1, "country")
	require.True(t, ok)
	assert.Equal(t, "us", v)
}

func TestLoadNodeAttributesIgnoresCommentsAndBlankLines(t *testing.T) {
	input := "" +
		"#index\tname\n" +
		"; a comment\n" +
		"\n" +
		"1\talice\n"
	na, err := format.LoadNodeAttributes(strings.NewReader(input), nil, []string{"name"})
	require.NoError(t, err)
	v, ok := na.Get(1, "name")
	require.True(t, ok)
	assert.Equal(t, "alice", v)
}
