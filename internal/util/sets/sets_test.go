package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New(1.5, 2.0)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(1.5))
	assert.False(t, s.Has(3))

	assert.True(t, s.Add(3))
	assert.False(t, s.Add(3), "second add reports an existing element")
	assert.Equal(t, 3, s.Len())
}

func TestNew_Duplicates(t *testing.T) {
	s := New("a", "a", "b")
	assert.Equal(t, 2, s.Len())
}
