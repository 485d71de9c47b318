package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shade string

const (
	shadeLight shade = "light"
	shadeDark  shade = "dark"
)

func newShadeNormalizer() *Normalizer[shade] {
	return NewNormalizer(map[string]shade{
		"light": shadeLight,
		"Dark":  shadeDark,
	}, shadeLight)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newShadeNormalizer()

	tests := []struct {
		name  string
		input string
		want  shade
	}{
		{"exact match", "light", shadeLight},
		{"case insensitive", "DARK", shadeDark},
		{"with spaces", "  dark  ", shadeDark},
		{"unknown falls back", "purple", shadeLight},
		{"empty falls back", "", shadeLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newShadeNormalizer()

	v, err := n.NormalizeWithError(" Dark")
	require.NoError(t, err)
	assert.Equal(t, shadeDark, v)

	v, err = n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, shadeLight, v)

	_, err = n.NormalizeWithError("purple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dark, light")
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	n := newShadeNormalizer()
	keys := n.ValidKeys()
	require.Equal(t, []string{"dark", "light"}, keys)

	keys[0] = "mutated"
	assert.Equal(t, []string{"dark", "light"}, n.ValidKeys())
}
