package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExports_OrderAndDelete(t *testing.T) {
	e := NewExports()
	e.Set("b", 1)
	e.Set("a", 2)
	e.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, e.Keys())
	v, ok := e.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	assert.True(t, e.Delete("b"))
	assert.False(t, e.Delete("b"))
	assert.Equal(t, []string{"a"}, e.Keys())
	assert.Equal(t, 1, e.Len())
}
