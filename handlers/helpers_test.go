package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalStrings(t *testing.T) {
	assert.Equal(t, "[]", marshalStrings(nil))
	assert.Equal(t, "[]", marshalStrings([]string{}))
	assert.Equal(t, `["a","b"]`, marshalStrings([]string{"a", "b"}))
}

func TestUnmarshalStrings(t *testing.T) {
	assert.Nil(t, unmarshalStrings(""))
	assert.Nil(t, unmarshalStrings("not json"))
	assert.Equal(t, []string{"x"}, unmarshalStrings(`["x"]`))
}

func TestBareLinks(t *testing.T) {
	assert.Equal(t, "[]", bareLinks("no urls here"))
	assert.Equal(t,
		`[{"url":"https://example.com/a"}]`,
		bareLinks("see https://example.com/a today"))
}
